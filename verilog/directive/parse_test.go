package directive

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		input string
		want  Line
	}{
		{"`line 1 \"a.sv\" 0", Line{File: "a.sv", Line: 1, Level: LevelChange}},
		{"`line 42 \"inc/b.svh\" 1", Line{File: "inc/b.svh", Line: 42, Level: LevelEnter}},
		{"`line 7 \"dir with space/c.v\" 2  ", Line{File: "dir with space/c.v", Line: 7, Level: LevelExit}},
		{"`line\t3\t\"d.v\"\t0\n", Line{File: "d.v", Line: 3, Level: LevelChange}},
		{"`line 3 \"\" 0", Line{File: "", Line: 3, Level: LevelChange}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLine(tt.input)
			if err != nil {
				t.Fatalf("ParseLine(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLineMalformed(t *testing.T) {
	tests := []string{
		"`line",
		"`line 1",
		"`line x \"a.sv\" 0",
		"`line 1 a.sv 0",
		"`line 1 \"a.sv\" 3",
		"`line 1 \"a.sv\"",
		"`include \"a.sv\"",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseLine(input); err == nil {
				t.Errorf("ParseLine(%q) succeeded, want error", input)
			}
		})
	}
}

func TestParseComment(t *testing.T) {
	tests := []struct {
		input string
		want  Comment
	}{
		{"/*verilator lint_off WIDTH*/", Comment{Verb: "lint_off", Args: "WIDTH"}},
		{"/*verilator lint_on UNUSED */", Comment{Verb: "lint_on", Args: "UNUSED"}},
		{"/*verilator lint_save*/", Comment{Verb: "lint_save"}},
		{"/*verilator  lint_restore */", Comment{Verb: "lint_restore"}},
		{"/*verilator tag hello world*/", Comment{Verb: "tag", Args: "hello world"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseComment(tt.input)
			if err != nil {
				t.Fatalf("ParseComment(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseComment(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCommentMalformed(t *testing.T) {
	for _, input := range []string{"/*verilator*/", "/* verilator lint_off */", "/*verilatorlint_off*/"} {
		if _, err := ParseComment(input); err == nil {
			t.Errorf("ParseComment(%q) succeeded, want error", input)
		}
	}
}

func TestParseTag(t *testing.T) {
	if got := ParseTag("/*verilator tag some payload*/"); got != "some payload" {
		t.Errorf("ParseTag = %q, want %q", got, "some payload")
	}
}

func TestLoadRejectsUnusedProduction(t *testing.T) {
	_, err := Load("bad.ebnf", "Directive = \"x\" .\nOther = \"y\" .\n")
	if err == nil {
		t.Errorf("Load succeeded, want unused production error")
	}
}
