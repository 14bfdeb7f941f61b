package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/svtok/diag"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the lint codes accepted by lint_off, lint_on and --waive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range diag.AllCodes() {
				state := "on"
				if code.DefaultOff() {
					state = "off"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", code, state)
			}
			return nil
		},
	}
}
