package parser

import (
	"testing"

	"github.com/dhamidi/svtok/diag"
)

func finalTokens(t *testing.T, input string, opts ...Option) []Token {
	t.Helper()
	toks, err := New([]byte(input), opts...).Tokens()
	if err != nil {
		t.Fatalf("Tokens(%q) error: %v", input, err)
	}
	return toks
}

func TestReclassify(t *testing.T) {
	tests := []struct {
		input string
		index int
		want  string
	}{
		{"( supply0 )", 0, "(__strength"},
		{"( weak1 , highz0 )", 0, "(__strength"},
		{"( small )", 0, "(__strength"},
		{"( x )", 0, "("},
		{": begin", 0, ":__begin"},
		{": fork", 0, ":__fork"},
		{": x", 0, ":"},
		{"const ref int x", 0, "const__ref"},
		{"const int x", 0, "const__etc"},
		{"global clocking", 0, "global__clocking"},
		{"global x", 0, "Identifier__etc"},
		{"local :: x", 0, "local__coloncolon"},
		{"local x", 0, "local__etc"},
		{"new ( )", 0, "new__paren"},
		{"new ;", 0, "new__etc"},
		{"static constraint c", 0, "static__constraint"},
		{"static int x", 0, "static__etc"},
		{"type ( a ) == type ( b )", 0, "type__eq"},
		{"type ( a ) != type ( b )", 0, "type__eq"},
		{"type ( a ) === type ( b )", 0, "type__eq"},
		{"type ( a ) !== type ( b )", 0, "type__eq"},
		{"type ( a ) == type ( b )", 5, "type__etc"},
		{"type ( a ) x", 0, "type__etc"},
		{"type ( a", 0, "type__etc"},
		{"virtual class c", 0, "virtual__class"},
		{"virtual interface i", 0, "virtual__interface"},
		{"virtual bus_if v", 0, "virtual__anyid"},
		{"virtual function", 0, "virtual__etc"},
		{"with ( x )", 0, "with__paren"},
		{"with [ x ]", 0, "with__bracket"},
		{"with { x }", 0, "with__brace"},
		{"with ;", 0, "with__etc"},
		{"foo bar (", 0, "Identifier__cell"},
		{"foo bar ;", 0, "Identifier__etc"},
		{"foo bar (", 1, "Identifier__etc"},
		{"foo # ( 8 ) bar [ 3 : 0 ] (", 0, "Identifier__cell"},
		{"foo # 8 bar (", 0, "Identifier__cell"},
		{"foo :: x", 0, "Identifier__coloncolon"},
		{"foo :: x", 2, "Identifier__etc"},
		{"foo # ( 1 ) :: x", 0, "Identifier__coloncolon"},
		{"foo # ( 1 ) x", 0, "Identifier__etc"},
		{"x foo bar (", 1, "Identifier__cell"},
		{"@ foo bar (", 1, "Identifier__etc"},
		{"# foo bar (", 1, "Identifier__etc"},
		{". foo bar (", 1, "Identifier__etc"},
		{"module m ;", 0, "module"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := finalTokens(t, tt.input, WithBboxUnsupported())
			if tt.index >= len(toks) {
				t.Fatalf("got %d tokens, want more than %d", len(toks), tt.index)
			}
			if got := toks[tt.index].Terminal(); got != tt.want {
				t.Errorf("token %d of %q = %s, want %s", tt.index, tt.input, got, tt.want)
			}
		})
	}
}

func TestGlobalAsIdentifier(t *testing.T) {
	s := New([]byte("global x"))
	tok, err := s.NextFinalToken()
	if err != nil {
		t.Fatalf("NextFinalToken error: %v", err)
	}
	if tok.Kind != TokenIdent {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenIdent)
	}
	if tok.Value.Kind != PayloadString || s.String(tok.Value.Str) != "global" {
		t.Errorf("payload = %+v (%q), want string %q", tok.Value, s.String(tok.Value.Str), "global")
	}
}

func TestGlobalStrict(t *testing.T) {
	toks := finalTokens(t, "global x", WithStrict())
	if got := toks[0].Terminal(); got != "global__etc" {
		t.Errorf("Terminal = %s, want global__etc", got)
	}
	toks = finalTokens(t, "global clocking", WithStrict())
	if got := toks[0].Terminal(); got != "global__clocking" {
		t.Errorf("Terminal = %s, want global__clocking", got)
	}
}

func TestReclassifyDoesNotConsume(t *testing.T) {
	toks := finalTokens(t, "type ( a ) == type ( b ) ;", WithBboxUnsupported())
	want := []TokenKind{
		TokenType, TokenLParen, TokenIdent, TokenRParen, TokenEQ,
		TokenType, TokenLParen, TokenIdent, TokenRParen, TokenSemicolon, TokenEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, kind := range want {
		if toks[i].Kind != kind {
			t.Errorf("token %d Kind = %v, want %v", i, toks[i].Kind, kind)
		}
	}
}

func TestPkgNoDeclWarnsOnce(t *testing.T) {
	c := diag.NewCollector()
	finalTokens(t, "foo :: x ; bar :: y ;", WithReporter(c))
	if c.WarningCount() != 1 {
		t.Fatalf("WarningCount = %d, want 1: %v", c.WarningCount(), c.Diagnostics())
	}
	d := c.Diagnostics()[0]
	if d.Code != diag.CodePkgNoDecl {
		t.Errorf("Code = %v, want %v", d.Code, diag.CodePkgNoDecl)
	}
	want := "Package/class 'foo' not found, and needs to be predeclared (IEEE 1800-2023 26.3)"
	if d.Message != want {
		t.Errorf("Message = %q, want %q", d.Message, want)
	}
}

func TestPkgNoDeclOncePerRun(t *testing.T) {
	once := diag.NewOnce()
	first := diag.NewCollector()
	second := diag.NewCollector()
	finalTokens(t, "foo :: x", WithReporter(first), WithOnce(once))
	finalTokens(t, "bar :: y", WithReporter(second), WithOnce(once))
	if first.WarningCount() != 1 || second.WarningCount() != 0 {
		t.Errorf("warnings = %d, %d; want 1, 0", first.WarningCount(), second.WarningCount())
	}
}

func TestPkgNoDeclBboxUnsupported(t *testing.T) {
	c := diag.NewCollector()
	toks := finalTokens(t, "foo :: x", WithReporter(c), WithBboxUnsupported())
	if c.WarningCount() != 0 {
		t.Errorf("WarningCount = %d, want 0", c.WarningCount())
	}
	if got := toks[0].Terminal(); got != "Identifier__coloncolon" {
		t.Errorf("Terminal = %s, want Identifier__coloncolon", got)
	}
}

func TestPkgNoDeclLintOff(t *testing.T) {
	c := diag.NewCollector()
	finalTokens(t, "/*verilator lint_off PKGNODECL*/\nfoo :: x", WithReporter(c))
	if len(c.Diagnostics()) != 0 {
		t.Errorf("Diagnostics = %v, want none", c.Diagnostics())
	}
}
