package fileline

import (
	"testing"

	"github.com/dhamidi/svtok/diag"
)

func TestParseIgnore(t *testing.T) {
	tests := []struct {
		text string
		want Ignore
	}{
		{"WIDTH@*.sv", Ignore{Code: diag.CodeWidth, FileGlob: "*.sv", From: 1}},
		{"width@rtl/top.sv:12", Ignore{Code: diag.CodeWidth, FileGlob: "rtl/top.sv", From: 12, To: 12}},
		{"PKGNODECL@top.sv:3-9", Ignore{Code: diag.CodePkgNoDecl, FileGlob: "top.sv", From: 3, To: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseIgnore(tt.text)
			if err != nil {
				t.Fatalf("ParseIgnore error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseIgnore(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseIgnoreErrors(t *testing.T) {
	for _, text := range []string{
		"WIDTH",
		"WIDTH@",
		"NOPE@top.sv",
		"WIDTH@top.sv:x",
		"WIDTH@top.sv:0",
		"WIDTH@top.sv:9-3",
		"WIDTH@top.sv:3-",
	} {
		if _, err := ParseIgnore(text); err == nil {
			t.Errorf("ParseIgnore(%q) succeeded, want error", text)
		}
	}
}
