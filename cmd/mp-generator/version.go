package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "mp-generator %s\n", Version)
			fmt.Fprintf(a.out, "Commit: %s\n", Commit)
			fmt.Fprintf(a.out, "Build Date: %s\n", BuildDate)
		},
	}
}
