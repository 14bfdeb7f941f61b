package parser

import (
	"fmt"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/verilog/fileline"
)

// SymbolKind is what a name was declared as.
type SymbolKind int

const (
	SymbolNone SymbolKind = iota
	SymbolType
	SymbolTypeFwd
	SymbolClass
	SymbolPackage
	SymbolOther
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolNone:
		return "none"
	case SymbolType:
		return "type"
	case SymbolTypeFwd:
		return "forward type"
	case SymbolClass:
		return "class"
	case SymbolPackage:
		return "package"
	case SymbolOther:
		return "other"
	}
	return "Unknown"
}

// LookupResult is the answer of a symbol table query.
type LookupResult struct {
	Kind SymbolKind
	Name string
	Node any
}

func (r LookupResult) Found() bool {
	return r.Kind != SymbolNone
}

// Scope is a symbol table context: module, package, class or block.
type Scope interface {
	ScopeName() string
}

// SymbolTable is the symbol table collaborator.
type SymbolTable interface {
	// FindFlatUnder looks name up in scope only.
	FindFlatUnder(scope Scope, name string) LookupResult
	// FindWithFallback looks name up in scope and then its enclosing scopes.
	FindWithFallback(scope Scope, name string) LookupResult
	CurrentScope() Scope
	// TakePendingScopedRoot returns and clears the scope set by the grammar
	// after it consumed a "scope::" prefix.
	TakePendingScopedRoot() (Scope, bool)
	// StdPackage returns the built-in std package, if loaded.
	StdPackage() (Scope, bool)
}

// Unit is the translation unit ($unit) the implicit std import is
// spliced into.
type Unit interface {
	UsesStdPackage() bool
	MarkStdPackageUsed()
	// SpliceStdImport adds "import std::*" and marks std as used.
	SpliceStdImport(at *fileline.FileLine)
}

type noSymbols struct{}

func (noSymbols) FindFlatUnder(Scope, string) LookupResult    { return LookupResult{} }
func (noSymbols) FindWithFallback(Scope, string) LookupResult { return LookupResult{} }
func (noSymbols) CurrentScope() Scope                         { return nil }
func (noSymbols) TakePendingScopedRoot() (Scope, bool)        { return nil, false }
func (noSymbols) StdPackage() (Scope, bool)                   { return nil, false }

type noUnit struct {
	used bool
}

func (u *noUnit) UsesStdPackage() bool              { return u.used }
func (u *noUnit) MarkStdPackageUsed()               { u.used = true }
func (u *noUnit) SpliceStdImport(*fileline.FileLine) { u.used = true }

// classifySymbol refines an identifier-class token with symbol table
// knowledge. Only generic and "::"-qualified identifiers are looked up.
func (s *Session) classifySymbol(tok Token) Token {
	if tok.Kind != TokenIdent || (tok.Ref != RefNone && tok.Ref != RefIDColonColon) {
		return tok
	}
	name := s.String(tok.Value.Str)
	qualified := tok.Ref == RefIDColonColon

	var found LookupResult
	if under, ok := s.symbols.TakePendingScopedRoot(); ok {
		log.Debugf("next id lookup forced under %s", scopeName(under))
		found = s.symbols.FindFlatUnder(under, name)
	} else {
		log.Debugf("find upward from %s for '%s'", scopeName(s.symbols.CurrentScope()), name)
		found = s.symbols.FindWithFallback(s.symbols.CurrentScope(), name)
	}

	if !found.Found() && !s.afterColonColon {
		if std, ok := s.symbols.StdPackage(); ok {
			found = s.symbols.FindWithFallback(std, name)
			if found.Found() && !s.stdImported {
				s.unit.SpliceStdImport(tok.Loc)
				s.stdImported = true
				log.Debugf("'%s' found in std; imported std::*", name)
			}
		}
	}

	if found.Found() {
		tok.Value = Payload{Kind: PayloadSymbol, Str: tok.Value.Str, Sym: found}
		if !qualified {
			switch found.Kind {
			case SymbolType, SymbolTypeFwd, SymbolClass:
				tok.Ref = RefIDType
			case SymbolPackage, SymbolOther:
				tok.Ref = RefIDEtc
			}
		} else if !s.afterColonColon && name == "std" {
			s.markStdUsed()
		}
		return tok
	}

	if qualified {
		if !s.bboxUnsup && s.once.First(diag.CodePkgNoDecl) {
			s.report.ReportWarning(tokLocation(tok, s), diag.CodePkgNoDecl,
				fmt.Sprintf("Package/class '%s' not found, and needs to be predeclared (IEEE 1800-2023 26.3)", name))
		}
		return tok
	}
	tok.Ref = RefIDEtc
	return tok
}

// markStdUsed records an explicit std:: reference; no implicit import is
// needed afterwards.
func (s *Session) markStdUsed() {
	s.stdImported = true
	s.unit.MarkStdPackageUsed()
}

func tokLocation(tok Token, s *Session) diag.Location {
	if tok.Loc != nil {
		return tok.Loc
	}
	return s.locs.Snapshot()
}

func scopeName(sc Scope) string {
	if sc == nil {
		return "<none>"
	}
	return sc.ScopeName()
}
