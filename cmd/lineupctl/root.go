package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lineupctl",
		Short:        "Quarter lineup planner",
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(), newFormationsCmd())
	return root
}
