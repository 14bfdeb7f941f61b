package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/verilog/directive"
	"github.com/dhamidi/svtok/verilog/fileline"
)

type Option func(*Session)

func WithFile(path string) Option {
	return func(s *Session) {
		s.file = path
	}
}

// WithStrict selects pedantic IEEE keyword handling: a "global" that does
// not introduce "global clocking" stays a keyword.
func WithStrict() Option {
	return func(s *Session) {
		s.strict = true
	}
}

// WithBboxUnsupported tolerates unresolved package or class qualifiers
// without the PKGNODECL warning.
func WithBboxUnsupported() Option {
	return func(s *Session) {
		s.bboxUnsup = true
	}
}

// WithFutureCodes allowlists lint codes and control comment names that
// are reserved for future use.
func WithFutureCodes(names ...string) Option {
	return func(s *Session) {
		s.future = append(s.future, names...)
	}
}

func WithReporter(r diag.Reporter) Option {
	return func(s *Session) {
		s.report = r
	}
}

// WithOnce shares run-wide one-time diagnostic state between sessions.
func WithOnce(o *diag.Once) Option {
	return func(s *Session) {
		s.once = o
	}
}

func WithSymbols(t SymbolTable) Option {
	return func(s *Session) {
		s.symbols = t
	}
}

func WithUnit(u Unit) Option {
	return func(s *Session) {
		s.unit = u
	}
}

func WithIgnores(ignores ...fileline.Ignore) Option {
	return func(s *Session) {
		s.ignores = append(s.ignores, ignores...)
	}
}

type NumberKind uint8

const (
	NumberInt NumberKind = iota
	NumberFloat
	NumberTime
)

// Number is a numeric literal as stored in the session arena. Value is in
// seconds for time literals.
type Number struct {
	Text  string
	Kind  NumberKind
	Value float64
}

// Session is the state of parsing one file: lookahead, locations,
// literal storage and the one-shot classification flags. Nothing in it
// is shared with other sessions.
type Session struct {
	file      string
	strict    bool
	bboxUnsup bool
	future    []string
	ignores   []fileline.Ignore
	report    diag.Reporter
	once      *diag.Once
	symbols   SymbolTable
	unit      Unit

	queue *Queue
	locs  *fileline.Stack

	strs []string
	nums []Number

	// lastFinal is the token most recently handed to the grammar.
	lastFinal Token
	// afterColonColon is set when lastFinal was "::". It disables the
	// std package fallback for the qualified name that follows.
	afterColonColon bool
	// stdImported is set once std is known to the translation unit, by
	// the implicit "import std::*" splice or an explicit std:: reference.
	// Later std fallbacks do not splice again.
	stdImported bool
	// fatal is the first internal invariant violation; it ends the session.
	fatal error

	timeLastUnit  Timescale
	timePrecision Timescale
	unitTime      Timescale
	moduleUnits   map[string]Timescale
}

// NewSession creates a session. Attach a Source before asking for tokens.
func NewSession(opts ...Option) *Session {
	s := &Session{
		file:        "<input>",
		moduleUnits: make(map[string]Timescale),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.report == nil {
		s.report = diag.NewCollector()
	}
	if s.once == nil {
		s.once = diag.NewOnce()
	}
	if s.symbols == nil {
		s.symbols = noSymbols{}
	}
	if s.unit == nil {
		s.unit = &noUnit{}
	}
	s.stdImported = s.unit.UsesStdPackage()

	s.locs = fileline.NewStack(s.file, s.report)
	for _, name := range s.future {
		s.locs.AddFuture(name)
	}
	for _, ig := range s.ignores {
		s.locs.AddIgnore(ig)
	}
	return s
}

// New creates a session lexing input with the built-in raw scanner.
func New(input []byte, opts ...Option) *Session {
	s := NewSession(opts...)
	s.Attach(NewLexer(input, s))
	return s
}

// Attach starts reading raw tokens from src with warnings reset to their
// defaults.
func (s *Session) Attach(src Source) {
	s.locs.ResetWarnings()
	s.queue = NewQueue(src)
}

func (s *Session) Locations() *fileline.Stack {
	return s.locs
}

func (s *Session) Queue() *Queue {
	return s.queue
}

func (s *Session) Reporter() diag.Reporter {
	return s.report
}

// Location implements Host.
func (s *Session) Location() *fileline.FileLine {
	return s.locs.Snapshot()
}

// NewLine implements Host.
func (s *Session) NewLine() {
	s.locs.NewLine()
}

// NewString stores s in the session arena.
func (s *Session) NewString(str string) StringHandle {
	s.strs = append(s.strs, str)
	return StringHandle(len(s.strs) - 1)
}

func (s *Session) String(h StringHandle) string {
	if h < 0 || int(h) >= len(s.strs) {
		return ""
	}
	return s.strs[h]
}

// NewNumber parses and stores a numeric literal. A time literal with a
// suffix the scanner should never have produced is fatal.
func (s *Session) NewNumber(text string, kind NumberKind) NumberHandle {
	n := Number{Text: text, Kind: kind}
	switch kind {
	case NumberInt:
		n.Value = parseIntValue(text)
	case NumberFloat:
		n.Value = parseFloatValue(text)
	case NumberTime:
		v, err := ParseTimeNumber(text)
		if err != nil && s.fatal == nil {
			s.fatal = &diag.FatalError{Pos: s.locs.Snapshot().Pos(), Message: err.Error()}
		}
		n.Value = v
	}
	s.nums = append(s.nums, n)
	return NumberHandle(len(s.nums) - 1)
}

func (s *Session) Number(h NumberHandle) Number {
	if h < 0 || int(h) >= len(s.nums) {
		return Number{}
	}
	return s.nums[h]
}

// HandleLineDirective implements Host.
func (s *Session) HandleLineDirective(text string) {
	s.locs.LineDirective(text)
}

var passiveComments = map[string]bool{
	"public":           true,
	"public_flat":      true,
	"public_flat_rd":   true,
	"public_flat_rw":   true,
	"public_module":    true,
	"coverage_off":     true,
	"coverage_on":      true,
	"tracing_off":      true,
	"tracing_on":       true,
	"inline_module":    true,
	"no_inline_module": true,
}

// HandleControlComment applies a /*verilator ...*/ comment.
func (s *Session) HandleControlComment(text string) {
	at := s.locs.Snapshot()
	c, err := directive.ParseComment(text)
	if err != nil {
		s.badComment(at, text)
		return
	}
	switch c.Verb {
	case "lint_off", "lint_on":
		s.locs.LintOff(at, strings.TrimSpace(c.Args), c.Verb == "lint_off", text)
	case "lint_save":
		s.locs.LintSave()
	case "lint_restore":
		s.locs.LintRestore(at)
	case "tag":
		log.Debugf("tag %q at %s", directive.ParseTag(text), at)
	default:
		if !passiveComments[c.Verb] {
			s.badComment(at, text)
		}
	}
}

func (s *Session) badComment(at *fileline.FileLine, text string) {
	body := strings.TrimSpace(strings.TrimPrefix(text, "/*verilator"))
	name := body
	for i, ch := range body {
		if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9') {
			name = body[:i]
			break
		}
	}
	if !s.locs.IsFuture(name) {
		s.report.ReportError(at, fmt.Sprintf("Unknown verilator comment: '%s'", text))
	}
}
