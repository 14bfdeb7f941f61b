// Package directive recognizes the in-stream control text the raw scanner
// hands to the token pipeline: `line directives and /*verilator ...*/
// control comments.
//
// The accepted shapes are written down as an EBNF grammar (see
// directiveGrammar) and matched with a small memoizing recognizer over
// golang.org/x/exp/ebnf expressions. Field extraction happens only after the
// whole text matched, so callers never see half-parsed directives.
package directive

import (
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

const directiveGrammar = `
Directive = LineDirective | ControlComment .

LineDirective = "` + "`" + `line" spaces number spaces filename spaces level [ spaces ] .
ControlComment = "/*verilator" spaces word { spaces word } [ spaces ] "*/" .

spaces = space { space } .
space = " " | "\t" .
number = digit { digit } .
digit = "0" … "9" .
level = "0" | "1" | "2" .
filename = "\"" { fchar } "\"" .
fchar = " " … "!" | "#" … "~" .
word = wchar { wchar } .
wchar = "!" … ")" | "+" … "~" .
`

// Grammar is a verified directive grammar.
type Grammar struct {
	productions ebnf.Grammar
}

var defaultGrammar = mustLoad(directiveGrammar)

// GrammarSource is the EBNF text of the built-in directive grammar.
func GrammarSource() string {
	return strings.TrimPrefix(directiveGrammar, "\n")
}

func mustLoad(src string) *Grammar {
	g, err := Load("directive.ebnf", src)
	if err != nil {
		panic(err)
	}
	return g
}

// Load parses and verifies an EBNF grammar whose start production is
// "Directive".
func Load(filename, src string) (*Grammar, error) {
	productions, err := ebnf.Parse(filename, strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(productions, "Directive"); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return &Grammar{productions: productions}, nil
}

type memoKey struct {
	name   string
	offset int
}

type matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

// Match reports whether text is exactly one instance of the named
// production.
func (g *Grammar) Match(production, text string) bool {
	m := &matcher{
		grammar:  g.productions,
		input:    text,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
	n, ok := m.matchName(production, 0)
	return ok && n == len(text)
}

// match returns the length matched at offset. Option and repetition may
// match the empty string, so success is reported separately from length.
func (m *matcher) match(expr ebnf.Expression, offset int) (int, bool) {
	switch e := expr.(type) {
	case nil:
		return 0, true

	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String), true
		}
		return 0, false

	case *ebnf.Range:
		if offset >= len(m.input) {
			return 0, false
		}
		ch := m.input[offset]
		if ch >= e.Begin.String[0] && ch <= e.End.String[0] {
			return 1, true
		}
		return 0, false

	case ebnf.Sequence:
		pos := offset
		for _, item := range e {
			n, ok := m.match(item, pos)
			if !ok {
				return 0, false
			}
			pos += n
		}
		return pos - offset, true

	case ebnf.Alternative:
		best, found := 0, false
		for _, alt := range e {
			if n, ok := m.match(alt, offset); ok && (!found || n > best) {
				best, found = n, true
			}
		}
		return best, found

	case *ebnf.Repetition:
		pos := offset
		for {
			n, ok := m.match(e.Body, pos)
			if !ok || n == 0 {
				break
			}
			pos += n
		}
		return pos - offset, true

	case *ebnf.Option:
		if n, ok := m.match(e.Body, offset); ok {
			return n, true
		}
		return 0, true

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return 0, false
}

func (m *matcher) matchName(name string, offset int) (int, bool) {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n, n >= 0
	}
	if m.visiting[key] {
		return 0, false
	}
	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return 0, false
	}

	m.visiting[key] = true
	n, ok := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	if !ok {
		m.memo[key] = -1
		return 0, false
	}
	m.memo[key] = n
	return n, true
}
