package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stackless/internal/config"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <file>",
	Short: "Validate a pipeline file and list its passes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pf, err := config.LoadPipeline(args[0])
		if err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		if quiet {
			return nil
		}
		fmt.Fprintf(os.Stdout, "passes=%d\n", len(pf.Passes))
		for i, name := range pf.Passes {
			fmt.Fprintf(os.Stdout, "  %d: %s\n", i+1, name)
		}
		return nil
	},
}
