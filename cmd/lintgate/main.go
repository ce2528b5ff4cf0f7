// Package main provides the entry point for the lintgate CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/cmd/lintgate/commands"
	"github.com/lintgate/lintgate/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lintgate",
		Short: "Lintgate - commit-time lint gating for Rust codebases",
		Long: `Lintgate keeps lint debt from growing.

Commands:
  ratchet   Enforce that suppressed-lint counts never increase
  clippy    Run cargo clippy and report lints only for the given files
  status    Show the persisted suppression baseline`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewRatchetCommand())
	rootCmd.AddCommand(commands.NewClippyCommand())
	rootCmd.AddCommand(commands.NewStatusCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		var exitErr *commands.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "lintgate %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
