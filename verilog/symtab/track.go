package symtab

import (
	"github.com/dhamidi/svtok/verilog/parser"
)

// Tracker follows the final token stream and feeds declarations and scope
// changes back into a Table, so later identifiers in the same file are
// classified against what came before. It recognizes only the
// declaration shapes that matter for classification:
//
//	package p;  class c;  module m;  interface i;
//	typedef ... name;  typedef class name;
//	import p::*;  import p::name;
//	p::name
//	timeunit 1ns / 1ps;  timeprecision 1ps;
type Tracker struct {
	table *Table

	prev      parser.Token
	typedef   bool
	typedefID string
	braces    int
	fwd       bool
	qualifier *Scope
	skipDecl  bool

	importing bool
	importPkg string
	importAt  parser.Token

	timescale TimescaleSink
	inTime    bool
	timeDecl  parser.TokenKind
	timeSlash bool
	unitSet   bool
	unitVal   float64
	precSet   bool
	precVal   float64
}

// TimescaleSink receives timeunit and timeprecision declarations. A
// parser.Session is one.
type TimescaleSink interface {
	TimescaleMod(module string, unitSet bool, unitVal float64, precSet bool, precVal float64)
}

func NewTracker(t *Table) *Tracker {
	return &Tracker{table: t}
}

// SetTimescaleSink routes timeunit and timeprecision declarations to s.
// Without a sink they are skipped.
func (tr *Tracker) SetTimescaleSink(s TimescaleSink) {
	tr.timescale = s
}

// Observe must be called with every final token, in order, before the
// next one is requested.
func (tr *Tracker) Observe(tok parser.Token) {
	defer func() { tr.prev = tok }()

	if tr.prev.Kind == parser.TokenColonColon && tok.Kind != parser.TokenIdent {
		tr.table.TakePendingScopedRoot()
	}

	switch tok.Kind {
	case parser.TokenIdent:
		tr.observeIdent(tok)
	case parser.TokenColonColon:
		if tr.qualifier != nil {
			tr.table.SetNextID(tr.qualifier)
			tr.qualifier = nil
		}
	case parser.TokenVirtual:
		tr.skipDecl = tok.Ref == parser.RefVirtualInterface
	case parser.TokenImport:
		tr.importing = true
		tr.importPkg = ""
		tr.importAt = tok
	case parser.TokenStar:
		if tr.importing && tr.prev.Kind == parser.TokenColonColon {
			tr.table.Import(tr.importPkg, "*", tr.importAt.Loc)
		}
	case parser.TokenTypedef:
		tr.typedef = true
		tr.typedefID = ""
		tr.braces = 0
		tr.fwd = false
	case parser.TokenLBrace:
		tr.braces++
	case parser.TokenRBrace:
		tr.braces--
	case parser.TokenTimeunit, parser.TokenTimeprecision:
		tr.inTime = true
		tr.timeDecl = tok.Kind
		tr.timeSlash = false
		tr.unitSet, tr.precSet = false, false
	case parser.TokenSlash:
		tr.timeSlash = tr.inTime && tr.timeDecl == parser.TokenTimeunit
	case parser.TokenTimeNum:
		tr.observeTime(tok)
	case parser.TokenSemicolon:
		if tr.inTime {
			tr.endTimeDecl()
		}
		if tr.typedef && tr.braces > 0 {
			return
		}
		if tr.typedef && tr.typedefID != "" {
			kind := parser.SymbolType
			if tr.fwd {
				kind = parser.SymbolTypeFwd
			}
			if _, ok := tr.table.current.Lookup(tr.typedefID); !ok || !tr.fwd {
				tr.table.Declare(tr.typedefID, kind)
			}
		}
		tr.typedef = false
		tr.importing = false
	case parser.TokenEndpackage, parser.TokenEndclass, parser.TokenEndmodule, parser.TokenEndinterface:
		tr.table.Pop()
	}
}

func (tr *Tracker) observeIdent(tok parser.Token) {
	name := tok.Literal

	if tok.Ref == parser.RefIDColonColon {
		tr.qualifier = nil
		if tok.Value.Kind == parser.PayloadSymbol {
			tr.qualifier, _ = tok.Value.Sym.Node.(*Scope)
		}
	}

	if tr.importing {
		switch {
		case tok.Ref == parser.RefIDColonColon:
			tr.importPkg = name
		case tr.prev.Kind == parser.TokenColonColon:
			tr.table.Import(tr.importPkg, name, tr.importAt.Loc)
		}
		return
	}

	if tr.typedef {
		if tr.prev.Kind == parser.TokenClass {
			tr.fwd = true
		}
		// the last identifier before ';' is the declared name
		if tr.braces == 0 && tok.Ref != parser.RefIDColonColon {
			tr.typedefID = name
		}
		return
	}

	skip := tr.skipDecl
	tr.skipDecl = false
	if skip {
		return
	}
	switch tr.prev.Kind {
	case parser.TokenPackage:
		tr.table.Push(name, parser.SymbolPackage)
	case parser.TokenClass:
		tr.table.Push(name, parser.SymbolClass)
	case parser.TokenModule, parser.TokenInterface:
		tr.table.Push(name, parser.SymbolOther)
	}
}

func (tr *Tracker) observeTime(tok parser.Token) {
	if !tr.inTime {
		return
	}
	v, err := parser.ParseTimeNumber(tok.Literal)
	if err != nil {
		return
	}
	if tr.timeDecl == parser.TokenTimeprecision || tr.timeSlash {
		tr.precSet, tr.precVal = true, v
	} else {
		tr.unitSet, tr.unitVal = true, v
	}
}

// endTimeDecl applies a finished declaration to the enclosing design
// unit, or to the compilation unit at the top level.
func (tr *Tracker) endTimeDecl() {
	tr.inTime = false
	if tr.timescale == nil || (!tr.unitSet && !tr.precSet) {
		return
	}
	module := ""
	if cur := tr.table.current; cur != tr.table.root {
		module = cur.ScopeName()
	}
	tr.timescale.TimescaleMod(module, tr.unitSet, tr.unitVal, tr.precSet, tr.precVal)
}
