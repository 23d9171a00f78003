package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stackless/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stackless",
	Short: "Stackless bytecode analysis toolchain",
	Long:  `Stackless inspects per-function analysis targets of a contract-VM prover pipeline`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color flag against the output terminal.
func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
