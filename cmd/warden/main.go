package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"warden/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Warden grammar and style overlay toolchain",
	Long:  `Warden inspects grammar and style reports against their source texts`,
}

// main wires the subcommands and persistent flags, then executes the root
// command. A command error exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-findings", 100, "maximum number of findings to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
