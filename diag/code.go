package diag

import "strings"

// Code identifies a lint warning. Codes can be switched off per region
// with /*verilator lint_off CODE*/.
type Code int

const (
	CodeNone Code = iota
	CodeBlkSeq
	CodeCaseIncomplete
	CodeDeclFilename
	CodeImplicit
	CodeLatch
	CodeMultiDriven
	CodePinMissing
	CodePkgNoDecl
	CodeUndriven
	CodeUnoptFlat
	CodeUnused
	CodeVarHidden
	CodeWidth

	codeCount
)

var codeNames = map[Code]string{
	CodeNone:           "NONE",
	CodeBlkSeq:         "BLKSEQ",
	CodeCaseIncomplete: "CASEINCOMPLETE",
	CodeDeclFilename:   "DECLFILENAME",
	CodeImplicit:       "IMPLICIT",
	CodeLatch:          "LATCH",
	CodeMultiDriven:    "MULTIDRIVEN",
	CodePinMissing:     "PINMISSING",
	CodePkgNoDecl:      "PKGNODECL",
	CodeUndriven:       "UNDRIVEN",
	CodeUnoptFlat:      "UNOPTFLAT",
	CodeUnused:         "UNUSED",
	CodeVarHidden:      "VARHIDDEN",
	CodeWidth:          "WIDTH",
}

// defaultOff lists the style warnings that are disabled until a file
// turns them on.
var defaultOff = map[Code]bool{
	CodeDeclFilename: true,
	CodeUnused:       true,
	CodeVarHidden:    true,
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Unknown"
}

// DefaultOff reports whether the code starts out suppressed.
func (c Code) DefaultOff() bool {
	return defaultOff[c]
}

// LookupCode maps a lint message name to its code. Matching is case
// insensitive.
func LookupCode(name string) (Code, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for code, n := range codeNames {
		if code != CodeNone && n == name {
			return code, true
		}
	}
	return CodeNone, false
}

// AllCodes returns every lint code in declaration order.
func AllCodes() []Code {
	codes := make([]Code, 0, codeCount-1)
	for c := CodeNone + 1; c < codeCount; c++ {
		codes = append(codes, c)
	}
	return codes
}
