package fileline

import (
	"fmt"
	"path"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/verilog/directive"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("svtok.fileline")

// Ignore switches a lint code off for a line range of matching files.
// To of zero leaves the range open.
type Ignore struct {
	Code     diag.Code
	FileGlob string
	From     int
	To       int
}

func (ig Ignore) matches(file string) bool {
	ok, err := path.Match(ig.FileGlob, file)
	return err == nil && ok
}

// Stack is the nested source location state of one parse session.
type Stack struct {
	nodes   []*FileLine
	top     *FileLine
	shared  bool
	lint    []WarnSet
	ignores []Ignore
	future  map[string]bool
	report  diag.Reporter
}

// NewStack starts at line 1 of file with no parent.
func NewStack(file string, report diag.Reporter) *Stack {
	return &Stack{
		top: &FileLine{
			filename:      file,
			lineno:        1,
			contentLineno: 1,
			warnOff:       DefaultWarnSet(),
			parent:        NoParent,
		},
		future: make(map[string]bool),
		report: report,
	}
}

// AddIgnore registers a pending warning-ignore range. Ranges are applied
// whenever the line or file name changes.
func (s *Stack) AddIgnore(ig Ignore) {
	s.ignores = append(s.ignores, ig)
}

// AddFuture allowlists a lint code or comment name reserved for future
// use, so using it is not an error.
func (s *Stack) AddFuture(name string) {
	s.future[name] = true
}

func (s *Stack) IsFuture(name string) bool {
	return s.future[name]
}

// Snapshot returns the current location for attaching to a token or
// diagnostic. The returned value stays valid; later changes copy first.
func (s *Stack) Snapshot() *FileLine {
	s.shared = true
	return s.top
}

// Parent resolves a parent handle.
func (s *Stack) Parent(fl *FileLine) (*FileLine, bool) {
	if fl.parent == NoParent || int(fl.parent) >= len(s.nodes) {
		return nil, false
	}
	return s.nodes[fl.parent], true
}

// Depth is the number of enclosing locations of the current top.
func (s *Stack) Depth() int {
	depth := 0
	for fl, ok := s.Parent(s.top); ok; fl, ok = s.Parent(fl) {
		depth++
	}
	return depth
}

func (s *Stack) mutable() *FileLine {
	if s.shared {
		c := *s.top
		s.top = &c
		s.shared = false
	}
	return s.top
}

// Enter pushes a new location for newFile whose parent is the current top.
func (s *Stack) Enter(newFile string) {
	prev := *s.top
	s.nodes = append(s.nodes, &prev)
	h := Handle(len(s.nodes) - 1)

	next := prev
	next.filename = newFile
	next.parent = h
	s.top = &next
	s.shared = false
	log.Debugf("enter %s from %s (depth %d)", newFile, prev.String(), s.Depth())
}

// Exit returns to a fresh copy of the parent, carrying the content line
// counter forward. Without a parent it does nothing.
func (s *Stack) Exit() {
	up, ok := s.Parent(s.top)
	if !ok {
		return
	}
	next := *up
	next.contentLineno = s.top.contentLineno
	log.Debugf("exit %s to %s", s.top.String(), next.String())
	s.top = &next
	s.shared = false
}

// Change sets the file name and line of the current top and re-applies
// pending ignore ranges.
func (s *Stack) Change(name string, line int) {
	fl := s.mutable()
	fl.filename = name
	fl.lineno = line
	s.applyIgnores(true)
}

// LineDirective applies a `line directive.
func (s *Stack) LineDirective(text string) {
	d, err := directive.ParseLine(text)
	if err != nil {
		s.report.ReportError(s.Snapshot(), err.Error())
		return
	}
	switch d.Level {
	case directive.LevelEnter:
		s.Enter(d.File)
	case directive.LevelExit:
		s.Exit()
	}
	s.Change(d.File, d.Line)
}

// NewLine advances to the next source line.
func (s *Stack) NewLine() {
	fl := s.mutable()
	fl.lineno++
	fl.contentLineno++
	s.applyIgnores(false)
}

func (s *Stack) applyIgnores(jumped bool) {
	fl := s.top
	for _, ig := range s.ignores {
		if !ig.matches(fl.filename) {
			continue
		}
		switch {
		case fl.lineno >= ig.From && (ig.To == 0 || fl.lineno <= ig.To):
			fl.warnOff = fl.warnOff.With(ig.Code, true)
		case ig.To != 0 && (fl.lineno == ig.To+1 || jumped && fl.lineno > ig.To):
			fl.warnOff = fl.warnOff.With(ig.Code, false)
		}
	}
}

// ResetWarnings re-enables the default warning state; done at the start
// of every file.
func (s *Stack) ResetWarnings() {
	s.mutable().warnOff = DefaultWarnSet()
}

// LintSave pushes the current suppression state.
func (s *Stack) LintSave() {
	s.lint = append(s.lint, s.top.warnOff)
}

// LintRestore pops the last saved suppression state into the current
// top. Restoring without a save is reported and changes nothing.
func (s *Stack) LintRestore(at diag.Location) {
	if len(s.lint) == 0 {
		s.report.ReportError(at, "/*verilator lint_restore*/ without matching save")
		return
	}
	s.mutable().warnOff = s.lint[len(s.lint)-1]
	s.lint = s.lint[:len(s.lint)-1]
}

// LintOff switches one lint code off (or back on) from the current
// location onwards. text is the full comment, used in the diagnostic.
func (s *Stack) LintOff(at diag.Location, name string, off bool, text string) {
	code, ok := diag.LookupCode(name)
	if !ok {
		if !s.IsFuture(name) {
			s.report.ReportError(at, fmt.Sprintf("Unknown verilator lint message code: '%s', in '%s'", name, text))
		}
		return
	}
	fl := s.mutable()
	fl.warnOff = fl.warnOff.With(code, off)
}
