package directive

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is the trailing flag of a `line directive.
type Level int

const (
	LevelChange Level = 0 // line or file name change only
	LevelEnter  Level = 1 // entering an included or expanded region
	LevelExit   Level = 2 // returning from one
)

func (l Level) String() string {
	switch l {
	case LevelChange:
		return "change"
	case LevelEnter:
		return "enter"
	case LevelExit:
		return "exit"
	}
	return "Unknown"
}

// Line is a parsed `line <number> "<filename>" <level> directive.
type Line struct {
	File  string
	Line  int
	Level Level
}

// ParseLine parses a `line directive.
func ParseLine(text string) (Line, error) {
	text = strings.TrimRight(text, " \t\r\n")
	if !defaultGrammar.Match("LineDirective", text) {
		return Line{}, fmt.Errorf("malformed `line directive: %q", text)
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, "`line"))

	sp := strings.IndexAny(rest, " \t")
	lineno, err := strconv.Atoi(rest[:sp])
	if err != nil {
		return Line{}, fmt.Errorf("`line number: %w", err)
	}
	rest = strings.TrimSpace(rest[sp:])

	end := strings.LastIndexByte(rest, '"')
	file := rest[1:end]
	level, _ := strconv.Atoi(strings.TrimSpace(rest[end+1:]))

	return Line{File: file, Line: lineno, Level: Level(level)}, nil
}

// Comment is a parsed /*verilator <verb> <args>*/ control comment.
type Comment struct {
	Verb string
	Args string
}

// ParseComment parses a verilator control comment.
func ParseComment(text string) (Comment, error) {
	if !defaultGrammar.Match("ControlComment", text) {
		return Comment{}, fmt.Errorf("malformed verilator comment: %q", text)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(text, "/*verilator"), "*/")
	fields := strings.Fields(body)
	c := Comment{Verb: fields[0]}
	if len(fields) > 1 {
		c.Args = strings.Join(fields[1:], " ")
	}
	return c, nil
}

// ParseTag returns the payload of a /*verilator tag ...*/ comment.
func ParseTag(text string) string {
	tmp := strings.TrimPrefix(text, "/*verilator tag ")
	if pos := strings.LastIndex(tmp, "*/"); pos >= 0 {
		tmp = tmp[:pos]
	}
	return tmp
}
