package fileline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/svtok/diag"
)

// ParseIgnore reads a waiver written as CODE@GLOB, CODE@GLOB:LINE or
// CODE@GLOB:FROM-TO. Without lines the whole file is covered.
func ParseIgnore(text string) (Ignore, error) {
	name, rest, ok := strings.Cut(text, "@")
	if !ok || rest == "" {
		return Ignore{}, fmt.Errorf("waiver %q: want CODE@GLOB[:FROM[-TO]]", text)
	}
	code, ok := diag.LookupCode(name)
	if !ok {
		return Ignore{}, fmt.Errorf("waiver %q: unknown lint code %q", text, name)
	}
	ig := Ignore{Code: code, FileGlob: rest, From: 1}

	glob, lines, hasLines := cutLast(rest, ":")
	if !hasLines {
		return ig, nil
	}
	ig.FileGlob = glob

	fromText, toText, isRange := strings.Cut(lines, "-")
	from, err := strconv.Atoi(fromText)
	if err != nil || from < 1 {
		return Ignore{}, fmt.Errorf("waiver %q: bad line %q", text, fromText)
	}
	ig.From, ig.To = from, from
	if isRange {
		to, err := strconv.Atoi(toText)
		if err != nil || to < from {
			return Ignore{}, fmt.Errorf("waiver %q: bad line range %q", text, lines)
		}
		ig.To = to
	}
	return ig, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
