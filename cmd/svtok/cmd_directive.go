package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/svtok/verilog/directive"
)

func newDirectiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directive",
		Short: "Inspect the `line and /*verilator*/ directive grammar",
	}

	cmd.AddCommand(newDirectiveGrammarCmd())
	cmd.AddCommand(newDirectiveParseCmd())

	return cmd
}

func newDirectiveGrammarCmd() *cobra.Command {
	var checkFile string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the built-in grammar, or verify a replacement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if checkFile == "" {
				fmt.Fprint(out, directive.GrammarSource())
				return nil
			}

			src, err := os.ReadFile(checkFile)
			if err != nil {
				return fmt.Errorf("read grammar: %w", err)
			}
			if _, err := directive.Load(checkFile, string(src)); err != nil {
				printErrors(out, err)
				return err
			}
			fmt.Fprintf(out, "%s: ok\n", checkFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&checkFile, "check", "", "verify this grammar file instead of printing the built-in one")

	return cmd
}

func newDirectiveParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse one directive and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return describeDirective(cmd.OutOrStdout(), args[0])
		},
	}
}

func describeDirective(out io.Writer, text string) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "`line") {
		d, err := directive.ParseLine(text)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "line file=%q line=%d level=%s\n", d.File, d.Line, d.Level)
		return nil
	}

	c, err := directive.ParseComment(text)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "comment verb=%s args=%q", c.Verb, c.Args)
	if c.Verb == "tag" {
		fmt.Fprintf(out, " tag=%q", directive.ParseTag(text))
	}
	fmt.Fprintln(out)
	return nil
}

// printErrors prints each error of the list ebnf returns, one per line.
func printErrors(out io.Writer, err error) {
	for {
		v := reflect.ValueOf(err)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(out, v.Index(i).Interface())
			}
			return
		}
		next := unwrap(err)
		if next == nil {
			fmt.Fprintln(out, err)
			return
		}
		err = next
	}
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
