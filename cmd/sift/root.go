package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/sift/internal/version"
)

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sift",
		Short: "Triage captured type-checker diagnostics.",
		Long: `sift reads captured svelte-check / tsc output (colored or not, UTF-8 or
UTF-16), extracts every diagnostic, classifies it into a fixed taxonomy,
merges duplicates across captures and reports totals, hot files and a fix order.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("config", "", "config file (default .sift.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log debug detail to stderr")

	root.AddCommand(
		a.newAnalyzeCmd(),
		a.newClassifyCmd(),
		a.newCategoriesCmd(),
		a.newHistoryCmd(),
		a.newVersionCmd(),
	)
	return root
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
