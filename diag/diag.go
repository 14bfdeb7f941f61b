// Package diag collects the diagnostics produced while tokens are classified.
package diag

import (
	"fmt"
	"strings"
)

// Severity captures how impactful the diagnostic is.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	}
	return "Unknown"
}

// Position is a resolved source location.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Location is anything a diagnostic can be attached to. The location
// also decides whether a warning code is suppressed at that point.
type Location interface {
	Pos() Position
	WarnIsOff(code Code) bool
}

// Reporter is the diagnostics sink used by the token pipeline. Reporting
// never alters control flow.
type Reporter interface {
	ReportError(loc Location, msg string)
	ReportWarning(loc Location, code Code, msg string)
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Pos      Position
	Message  string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString("%")
	b.WriteString(d.Severity.String())
	if d.Code != CodeNone {
		b.WriteString("-")
		b.WriteString(d.Code.String())
	}
	b.WriteString(": ")
	b.WriteString(d.Pos.String())
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// Collector is a Reporter that keeps every diagnostic in order.
type Collector struct {
	diags    []Diagnostic
	errors   int
	warnings int
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) ReportError(loc Location, msg string) {
	c.diags = append(c.diags, Diagnostic{Severity: SeverityError, Pos: loc.Pos(), Message: msg})
	c.errors++
}

func (c *Collector) ReportWarning(loc Location, code Code, msg string) {
	if loc.WarnIsOff(code) {
		return
	}
	c.diags = append(c.diags, Diagnostic{Severity: SeverityWarning, Code: code, Pos: loc.Pos(), Message: msg})
	c.warnings++
}

func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

func (c *Collector) ErrorCount() int {
	return c.errors
}

func (c *Collector) WarningCount() int {
	return c.warnings
}

// Failed reports whether the run must be reported as failed. Any
// diagnostic that reached the collector counts, even though token
// production never stopped.
func (c *Collector) Failed() bool {
	return c.errors+c.warnings > 0
}

func (c *Collector) Reset() {
	c.diags = nil
	c.errors = 0
	c.warnings = 0
}

// Once remembers which run-wide one-time diagnostics were already issued.
// A single Once is shared by every session of one run.
type Once struct {
	seen map[Code]bool
}

func NewOnce() *Once {
	return &Once{seen: make(map[Code]bool)}
}

// First reports whether code is seen for the first time, and marks it.
func (o *Once) First(code Code) bool {
	if o.seen[code] {
		return false
	}
	o.seen[code] = true
	return true
}

// FatalError is an internal invariant violation. It aborts the
// compilation unit; continuing would silently miscompile.
type FatalError struct {
	Pos     Position
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%%Error: Internal Error: %s: %s", e.Pos, e.Message)
}
