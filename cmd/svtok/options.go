package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/svtok/verilog/fileline"
	"github.com/dhamidi/svtok/verilog/parser"
)

// pipelineFlags are the token pipeline settings shared by every command.
type pipelineFlags struct {
	pedantic  bool
	bboxUnsup bool
	future    []string
	waivers   []string
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.pedantic, "pedantic", false, "treat 'global' strictly as a keyword")
	cmd.Flags().BoolVar(&f.bboxUnsup, "bbox-unsup", false, "do not warn about undeclared package or class qualifiers")
	cmd.Flags().StringSliceVar(&f.future, "future0", nil, "accept a future lint code or control comment name")
	cmd.Flags().StringArrayVar(&f.waivers, "waive", nil, "suppress a lint code: CODE@GLOB[:FROM[-TO]]")
}

func (f *pipelineFlags) options() ([]parser.Option, error) {
	var opts []parser.Option
	if f.pedantic {
		opts = append(opts, parser.WithStrict())
	}
	if f.bboxUnsup {
		opts = append(opts, parser.WithBboxUnsupported())
	}
	if len(f.future) > 0 {
		opts = append(opts, parser.WithFutureCodes(f.future...))
	}
	for _, text := range f.waivers {
		ig, err := fileline.ParseIgnore(text)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithIgnores(ig))
	}
	return opts, nil
}
