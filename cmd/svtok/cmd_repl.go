package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/verilog/parser"
	"github.com/dhamidi/svtok/verilog/symtab"
)

const historyFile = ".svtok_history"

func newReplCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Classify SystemVerilog interactively, one line at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return runRepl(cmd.OutOrStdout(), opts)
		},
	}
	flags.register(cmd)

	return cmd
}

// repl keeps declarations and one-time diagnostics across lines, the way
// they would carry across one compilation unit.
type repl struct {
	out     io.Writer
	opts    []parser.Option
	table   *symtab.Table
	tracker *symtab.Tracker
	once    *diag.Once
	line    int
}

func newRepl(out io.Writer, opts []parser.Option) *repl {
	r := &repl{out: out, opts: opts}
	r.reset()
	return r
}

func (r *repl) reset() {
	r.table = symtab.New()
	r.tracker = symtab.NewTracker(r.table)
	r.once = diag.NewOnce()
	r.line = 0
}

// eval classifies one line and prints its tokens and diagnostics.
func (r *repl) eval(src string) {
	r.line++
	collector := diag.NewCollector()
	opts := append([]parser.Option{parser.WithFile(fmt.Sprintf("<repl:%d>", r.line))}, r.opts...)
	opts = append(opts,
		parser.WithReporter(collector),
		parser.WithOnce(r.once),
		parser.WithSymbols(r.table),
		parser.WithUnit(r.table),
	)
	s := parser.New([]byte(src), opts...)
	r.tracker.SetTimescaleSink(s)
	for {
		tok, err := s.NextFinalToken()
		if err != nil {
			fmt.Fprintln(r.out, err)
			break
		}
		if tok.Kind == parser.TokenEOF {
			break
		}
		r.tracker.Observe(tok)
		fmt.Fprintln(r.out, tok)
	}
	for _, d := range collector.Diagnostics() {
		fmt.Fprintln(r.out, d)
	}
}

// command runs a ":" command and reports whether the session should end.
func (r *repl) command(text string) (exit bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case ":quit", ":q":
		return true
	case ":reset":
		r.reset()
		fmt.Fprintln(r.out, "symbol table cleared")
	case ":scope":
		fmt.Fprintln(r.out, r.table.CurrentScope().ScopeName())
	case ":imports":
		for _, imp := range r.table.Imports() {
			fmt.Fprintf(r.out, "import %s::%s\n", imp.Package, imp.Item)
		}
	default:
		fmt.Fprintln(r.out, "commands: :quit :reset :scope :imports")
	}
	return false
}

func runRepl(out io.Writer, opts []parser.Option) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	r := newRepl(out, opts)
	for {
		line, err := ln.Prompt("sv> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if r.command(line) {
				return nil
			}
			continue
		}
		r.eval(line)
	}
}
