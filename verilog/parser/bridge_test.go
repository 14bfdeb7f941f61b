package parser_test

import (
	"errors"
	"testing"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/verilog/parser"
	"github.com/dhamidi/svtok/verilog/symtab"
)

func terminals(t *testing.T, s *parser.Session) []string {
	t.Helper()
	toks, err := s.Tokens()
	if err != nil {
		t.Fatalf("Tokens error: %v", err)
	}
	var names []string
	for _, tok := range toks {
		names = append(names, tok.Terminal())
	}
	return names
}

func TestSymbolClassification(t *testing.T) {
	table := symtab.New()
	table.Declare("word_t", parser.SymbolType)
	table.Declare("fwd_t", parser.SymbolTypeFwd)
	table.Declare("packet", parser.SymbolClass)
	table.Declare("pkg", parser.SymbolPackage)
	table.Declare("count", parser.SymbolOther)

	s := parser.New([]byte("word_t fwd_t packet pkg count unknown"),
		parser.WithSymbols(table), parser.WithUnit(table))
	got := terminals(t, s)
	want := []string{
		"Identifier__type", "Identifier__type", "Identifier__type",
		"Identifier__etc", "Identifier__etc", "Identifier__etc", "EOF",
	}
	if len(got) != len(want) {
		t.Fatalf("terminals = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSymbolPayload(t *testing.T) {
	table := symtab.New()
	table.Declare("word_t", parser.SymbolType)
	s := parser.New([]byte("word_t"), parser.WithSymbols(table), parser.WithUnit(table))

	tok, err := s.NextFinalToken()
	if err != nil {
		t.Fatalf("NextFinalToken error: %v", err)
	}
	if tok.Value.Kind != parser.PayloadSymbol {
		t.Fatalf("payload kind = %v, want symbol", tok.Value.Kind)
	}
	if tok.Value.Sym.Name != "word_t" || tok.Value.Sym.Kind != parser.SymbolType {
		t.Errorf("Sym = %+v", tok.Value.Sym)
	}
	if got := s.String(tok.Value.Str); got != "word_t" {
		t.Errorf("name = %q, want word_t", got)
	}
}

func TestScopedLookup(t *testing.T) {
	table := symtab.New()
	pkg := table.Push("pkg", parser.SymbolPackage)
	table.Declare("T", parser.SymbolType)
	table.Pop()
	table.Push("m", parser.SymbolOther)
	table.Declare("local_t", parser.SymbolType)

	s := parser.New([]byte("local_t T T"), parser.WithSymbols(table), parser.WithUnit(table))
	tok, _ := s.NextFinalToken()
	if got := tok.Terminal(); got != "Identifier__type" {
		t.Errorf("local_t = %s, want Identifier__type", got)
	}

	table.SetNextID(pkg)
	tok, _ = s.NextFinalToken()
	if got := tok.Terminal(); got != "Identifier__type" {
		t.Errorf("T under pkg = %s, want Identifier__type", got)
	}

	tok, _ = s.NextFinalToken()
	if got := tok.Terminal(); got != "Identifier__etc" {
		t.Errorf("T after pending root used = %s, want Identifier__etc", got)
	}
}

func TestStdFallbackSplicesOnce(t *testing.T) {
	table := symtab.New()
	s := parser.New([]byte("semaphore s ; mailbox m ; process p ;"),
		parser.WithSymbols(table), parser.WithUnit(table))
	got := terminals(t, s)

	for _, i := range []int{0, 3, 6} {
		if got[i] != "Identifier__type" {
			t.Errorf("token %d = %s, want Identifier__type", i, got[i])
		}
	}
	if n := len(table.Imports()); n != 1 {
		t.Fatalf("imports = %d, want 1", n)
	}
	imp := table.Imports()[0]
	if imp.Package != "std" || imp.Item != "*" {
		t.Errorf("import = %s::%s, want std::*", imp.Package, imp.Item)
	}
	if imp.At == nil || imp.At.Lineno() != 1 {
		t.Errorf("import location = %v, want line 1", imp.At)
	}
	if !table.UsesStdPackage() {
		t.Errorf("UsesStdPackage = false after splice")
	}
}

func TestStdFallbackSkippedAfterColonColon(t *testing.T) {
	table := symtab.New()
	c := diag.NewCollector()
	s := parser.New([]byte("foo :: semaphore"),
		parser.WithSymbols(table), parser.WithUnit(table), parser.WithReporter(c))
	got := terminals(t, s)

	if got[2] != "Identifier__etc" {
		t.Errorf("semaphore after :: = %s, want Identifier__etc", got[2])
	}
	if n := len(table.Imports()); n != 0 {
		t.Errorf("imports = %d, want 0", n)
	}
	if c.WarningCount() != 1 {
		t.Errorf("WarningCount = %d, want 1", c.WarningCount())
	}
}

func TestExplicitStdReference(t *testing.T) {
	table := symtab.New()
	s := parser.New([]byte("std :: process p ; mailbox m ;"),
		parser.WithSymbols(table), parser.WithUnit(table))
	got := terminals(t, s)

	if got[0] != "Identifier__coloncolon" {
		t.Errorf("std = %s, want Identifier__coloncolon", got[0])
	}
	if !table.UsesStdPackage() {
		t.Errorf("UsesStdPackage = false after std::")
	}
	if n := len(table.Imports()); n != 0 {
		t.Errorf("imports = %d, want 0", n)
	}
	if got[5] != "Identifier__type" {
		t.Errorf("mailbox = %s, want Identifier__type", got[5])
	}
}

func TestStdImportSharedBetweenSessions(t *testing.T) {
	table := symtab.New()
	for _, src := range []string{"semaphore s ;", "mailbox m ;"} {
		s := parser.New([]byte(src), parser.WithSymbols(table), parser.WithUnit(table))
		terminals(t, s)
	}
	if n := len(table.Imports()); n != 1 {
		t.Errorf("imports = %d, want 1", n)
	}
}

func TestNoStdPackage(t *testing.T) {
	table := symtab.NewWithoutStd()
	s := parser.New([]byte("semaphore s ;"), parser.WithSymbols(table), parser.WithUnit(table))
	got := terminals(t, s)
	if got[0] != "Identifier__etc" {
		t.Errorf("semaphore = %s, want Identifier__etc", got[0])
	}
	if n := len(table.Imports()); n != 0 {
		t.Errorf("imports = %d, want 0", n)
	}
}

// timeSource yields a single time literal through the session arena.
type timeSource struct {
	s    *parser.Session
	text string
	done bool
}

func (ts *timeSource) NextToken() parser.Token {
	if ts.done {
		return parser.Token{Kind: parser.TokenEOF}
	}
	ts.done = true
	h := ts.s.NewNumber(ts.text, parser.NumberTime)
	return parser.Token{
		Kind:    parser.TokenTimeNum,
		Literal: ts.text,
		Value:   parser.Payload{Kind: parser.PayloadNumber, Num: h},
	}
}

func (ts *timeSource) Reset() {
	ts.done = false
}

func TestUnknownTimeSuffixIsFatal(t *testing.T) {
	s := parser.NewSession(parser.WithFile("t.sv"))
	s.Attach(&timeSource{s: s, text: "5xs"})

	_, err := s.NextFinalToken()
	var fatal *diag.FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("err = %v, want *diag.FatalError", err)
	}
	if fatal.Pos.File != "t.sv" {
		t.Errorf("fatal file = %q, want t.sv", fatal.Pos.File)
	}

	tok, err := s.NextFinalToken()
	if err == nil || tok.Kind != parser.TokenEOF {
		t.Errorf("after fatal = %v, %v; want EOF and the same error", tok, err)
	}
}

func TestKnownTimeSuffix(t *testing.T) {
	s := parser.NewSession()
	s.Attach(&timeSource{s: s, text: "10ns"})
	tok, err := s.NextFinalToken()
	if err != nil {
		t.Fatalf("NextFinalToken error: %v", err)
	}
	if n := s.Number(tok.Value.Num); n.Value < 9.99e-9 || n.Value > 10.01e-9 {
		t.Errorf("Value = %g, want 1e-08", n.Value)
	}
}
