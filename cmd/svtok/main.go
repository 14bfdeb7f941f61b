package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:          "svtok",
		Short:        "SystemVerilog token classifier",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log verbosity (repeat for more)")

	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newCodesCmd())
	rootCmd.AddCommand(newDirectiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
