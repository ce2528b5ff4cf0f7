// Package commands implements CLI command handlers for lintgate.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/baseline"
	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/ratchet"
	"github.com/lintgate/lintgate/internal/scanner"
)

// ExitCodeError carries a process exit code out of cobra. The ratchet
// protocol is spoken through exit codes, so nonzero does not always mean
// failure and main must not print it as an error.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// RatchetCommand holds configuration and dependencies for the ratchet command.
type RatchetCommand struct {
	configPath string

	stdout io.Writer
	stderr io.Writer
}

// NewRatchetCommand creates the ratchet cobra command.
func NewRatchetCommand() *cobra.Command {
	rc := &RatchetCommand{stdout: os.Stdout, stderr: os.Stderr}

	cmd := &cobra.Command{
		Use:   "ratchet [files...]",
		Short: "Enforce that suppressed-lint counts never increase",
		Long: `Ratchet parses the given Rust files, counts the warnings each
#[allow(...)] attribute suppresses (weighted by how many declarations it
shields), and compares the totals to the persisted baseline. Exit codes:

  0  counts unchanged, nothing to do
  1  a suppression was added or grew; commit rejected
  2  counts shrank; the baseline was rewritten and must be re-staged`,
		RunE: func(_ *cobra.Command, args []string) error {
			return rc.Run(args)
		},
	}

	cmd.Flags().StringVarP(&rc.configPath, "config", "c", "", "config file path")

	return cmd
}

// Run executes one ratchet cycle over the given files.
func (rc *RatchetCommand) Run(files []string) error {
	cfg, cfgErr := config.Load(rc.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	store := baseline.NewFileStore(cfg.Baseline)

	code, runErr := ratchet.Run(context.Background(), store, scanner.New(), files, ratchet.Options{
		UpdateAnyway: config.UpdateAnyway(),
		BaselinePath: cfg.Baseline,
		Stdout:       rc.stdout,
		Stderr:       rc.stderr,
	})
	if runErr != nil {
		return runErr
	}

	if code != ratchet.ExitExpected {
		return &ExitCodeError{Code: code}
	}

	return nil
}
