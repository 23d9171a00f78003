package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stackless/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show stackless build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := version.Version
		if colorEnabled(cmd) {
			v = version.Colored()
		}
		fmt.Fprintf(os.Stdout, "stackless %s\n", v)
		if version.GitCommit != "" {
			fmt.Fprintf(os.Stdout, "commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(os.Stdout, "built:  %s\n", version.BuildDate)
		}
		return nil
	},
}
