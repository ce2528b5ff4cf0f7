package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/baseline"
	"github.com/lintgate/lintgate/internal/config"
)

// StatusCommand holds configuration and dependencies for the status command.
type StatusCommand struct {
	configPath string

	stdout io.Writer
}

// NewStatusCommand creates the status cobra command.
func NewStatusCommand() *cobra.Command {
	sc := &StatusCommand{stdout: os.Stdout}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the persisted suppression baseline",
		RunE: func(_ *cobra.Command, _ []string) error {
			return sc.Run()
		},
	}

	cmd.Flags().StringVarP(&sc.configPath, "config", "c", "", "config file path")

	return cmd
}

// Run renders the baseline as a table. It never writes the store.
func (sc *StatusCommand) Run() error {
	cfg, cfgErr := config.Load(sc.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	ledger, loadErr := baseline.NewFileStore(cfg.Baseline).Load()
	if loadErr != nil {
		return loadErr
	}

	if len(ledger) == 0 {
		fmt.Fprintf(sc.stdout, "No suppressions recorded in %s\n", cfg.Baseline)

		return nil
	}

	writer := table.NewWriter()
	writer.SetOutputMirror(sc.stdout)
	writer.AppendHeader(table.Row{"File", "Lint", "Count"})

	for _, file := range ledger.Files() {
		counts := ledger[file]
		for _, lint := range counts.Lints() {
			writer.AppendRow(table.Row{file, lint, counts[lint]})
		}
	}

	writer.AppendFooter(table.Row{"Total", "", humanize.Comma(int64(ledger.Total()))})
	writer.Render()

	return nil
}
