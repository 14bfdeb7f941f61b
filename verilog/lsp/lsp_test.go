package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/svtok/verilog/workspace"
)

func TestSemanticType(t *testing.T) {
	f := workspace.Tokenize("a.sv", []byte(`module m; semaphore s; foo bar (); pkg::x y; $display("x", 1); endmodule`))
	tests := []struct {
		literal string
		want    string
		ok      bool
	}{
		{"module", "keyword", true},
		{"m", "variable", true},
		{"semaphore", "class", true},
		{"foo", "type", true},
		{"pkg", "namespace", true},
		{"$display", "function", true},
		{`"x"`, "string", true},
		{"1", "number", true},
		{";", "", false},
	}
	for _, tt := range tests {
		var found bool
		for _, tok := range f.Tokens {
			if tok.Literal != tt.literal {
				continue
			}
			found = true
			got, ok := SemanticType(tok)
			if got != tt.want || ok != tt.ok {
				t.Errorf("SemanticType(%s) = %q, %v; want %q, %v", tt.literal, got, ok, tt.want, tt.ok)
			}
			break
		}
		if !found {
			t.Errorf("no token %s", tt.literal)
		}
	}
}

func TestEncodeSemanticTokens(t *testing.T) {
	f := workspace.Tokenize("a.sv", []byte("module m;\n  wire w;\nendmodule"))
	got := EncodeSemanticTokens(f.Content, f.Tokens)
	kw := protocol.UInteger(semTypes["keyword"])
	v := protocol.UInteger(semTypes["variable"])
	want := []protocol.UInteger{
		0, 0, 6, kw, 0, // module
		0, 7, 1, v, 0, // m
		1, 2, 4, kw, 0, // wire
		0, 5, 1, v, 0, // w
		1, 0, 9, kw, 0, // endmodule
	}
	if len(got) != len(want) {
		t.Fatalf("data = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("data[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEncodeSemanticTokensUTF16(t *testing.T) {
	f := workspace.Tokenize("a.sv", []byte("/* \u00fcber */ wire w;\n$display(\"\U0001F600\", x);"))
	got := EncodeSemanticTokens(f.Content, f.Tokens)
	kw := protocol.UInteger(semTypes["keyword"])
	v := protocol.UInteger(semTypes["variable"])
	fn := protocol.UInteger(semTypes["function"])
	str := protocol.UInteger(semTypes["string"])
	want := []protocol.UInteger{
		0, 11, 4, kw, 0, // wire, after a two-byte rune
		0, 5, 1, v, 0, // w
		1, 0, 8, fn, 0, // $display
		0, 9, 4, str, 0, // a rune outside the BMP is two units
		0, 6, 1, v, 0, // x
	}
	if len(got) != len(want) {
		t.Fatalf("data = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("data[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPublishParams(t *testing.T) {
	f := workspace.Tokenize("a.sv", []byte("\n/*verilator lint_restore*/\nfoo::bar x;"))
	params := publishParams("file:///a.sv", f)
	if params.URI != "file:///a.sv" {
		t.Errorf("URI = %q", params.URI)
	}
	if len(params.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(params.Diagnostics))
	}

	restore := params.Diagnostics[0]
	if *restore.Severity != protocol.DiagnosticSeverityError || restore.Range.Start.Line != 1 {
		t.Errorf("restore diagnostic = %+v, want an error on line index 1", restore)
	}
	pkg := params.Diagnostics[1]
	if *pkg.Severity != protocol.DiagnosticSeverityWarning || pkg.Range.Start.Line != 2 {
		t.Errorf("package diagnostic = %+v, want a warning on line index 2", pkg)
	}
	if pkg.Code == nil || pkg.Code.Value != "PKGNODECL" {
		t.Errorf("package diagnostic code = %v, want PKGNODECL", pkg.Code)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/u/rtl/top.sv", "/home/u/rtl/top.sv"},
		{"file:///home/u/my%20rtl/top.sv", "/home/u/my rtl/top.sv"},
		{"untitled:1", "untitled:1"},
	}
	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Errorf("uriToPath(%q) error: %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
