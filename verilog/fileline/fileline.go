// Package fileline tracks where tokens come from. A Stack holds the
// current location plus the chain of locations it was included from, and
// the per-region lint suppression state.
package fileline

import (
	"fmt"

	"github.com/dhamidi/svtok/diag"
)

// Handle addresses a location stored in a Stack's arena. Parent links are
// handles, so a child never keeps its parent alive by itself.
type Handle int32

const NoParent Handle = -1

// WarnSet is the set of suppressed lint codes.
type WarnSet uint64

// DefaultWarnSet has the default-off style warnings suppressed.
func DefaultWarnSet() WarnSet {
	var s WarnSet
	for _, c := range diag.AllCodes() {
		if c.DefaultOff() {
			s = s.With(c, true)
		}
	}
	return s
}

func (s WarnSet) IsOff(code diag.Code) bool {
	return s&(1<<uint(code)) != 0
}

func (s WarnSet) With(code diag.Code, off bool) WarnSet {
	if off {
		return s | 1<<uint(code)
	}
	return s &^ (1 << uint(code))
}

// FileLine is one source location. Values handed out by Stack.Snapshot
// are never mutated afterwards.
type FileLine struct {
	filename      string
	lineno        int
	contentLineno int
	warnOff       WarnSet
	parent        Handle
}

func (f *FileLine) Filename() string   { return f.filename }
func (f *FileLine) Lineno() int        { return f.lineno }
func (f *FileLine) ContentLineno() int { return f.contentLineno }
func (f *FileLine) Parent() Handle     { return f.parent }
func (f *FileLine) WarnSet() WarnSet   { return f.warnOff }

func (f *FileLine) WarnIsOff(code diag.Code) bool {
	return f.warnOff.IsOff(code)
}

func (f *FileLine) Pos() diag.Position {
	return diag.Position{File: f.filename, Line: f.lineno}
}

func (f *FileLine) String() string {
	return fmt.Sprintf("%s:%d", f.filename, f.lineno)
}
