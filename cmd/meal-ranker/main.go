package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "meal-ranker",
		Short:        "Rank recipe candidates and assemble meal plans",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newRankCmd())
	root.AddCommand(newPlanCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
