package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/format"
	"github.com/dhamidi/svtok/verilog/parser"
	"github.com/dhamidi/svtok/verilog/workspace"
)

func newTokensCmd() *cobra.Command {
	var outputFormat string
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "tokens <file>...",
		Short: "Print the classified token stream of preprocessed SystemVerilog files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			encoder, err := format.NewEncoder(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			return runTokens(args, encoder, opts)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")
	flags.register(cmd)

	return cmd
}

func runTokens(paths []string, encoder format.Encoder, opts []parser.Option) error {
	// one-time warnings are per run, not per file
	opts = append(opts, parser.WithOnce(diag.NewOnce()))

	failed := 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		f := workspace.Tokenize(path, content, opts...)
		if err := encoder.Encode(f); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if f.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files had diagnostics", failed, len(paths))
	}
	return nil
}
