package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/manifest"
)

// diagnosticFile captures the filename out of a clippy "--> path:line:col"
// location line.
var diagnosticFile = regexp.MustCompile(`-->\s+([^:]+)`)

// ClippyCommand holds configuration and dependencies for the clippy command.
type ClippyCommand struct {
	configPath string

	stderr io.Writer
}

// NewClippyCommand creates the clippy cobra command.
func NewClippyCommand() *cobra.Command {
	cc := &ClippyCommand{stderr: os.Stderr}

	cmd := &cobra.Command{
		Use:   "clippy [files...]",
		Short: "Run cargo clippy and report lints only for the given files",
		Long: `Clippy can only operate on whole crates, so the given files are
grouped by their nearest Cargo.toml and clippy runs once per crate. Only
diagnostics located in one of the given files are reported. The exit code
is the number of reported diagnostics.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return cc.Run(args)
		},
	}

	cmd.Flags().StringVarP(&cc.configPath, "config", "c", "", "config file path")

	return cmd
}

// Run lints the crates containing the given files and reports diagnostics
// for those files only.
func (cc *ClippyCommand) Run(files []string) error {
	cfg, cfgErr := config.Load(cc.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	grouped := groupByManifest(files)

	manifests := make([]string, 0, len(grouped))
	for cargoToml := range grouped {
		manifests = append(manifests, cargoToml)
	}

	sort.Strings(manifests)

	violations := 0

	for _, cargoToml := range manifests {
		out, runErr := cc.lintCrate(cargoToml, cfg.Clippy.Args)
		if runErr != nil {
			fmt.Fprintln(cc.stderr, runErr)

			continue
		}

		for _, diag := range filterDiagnostics(out, grouped[cargoToml]) {
			fmt.Fprintf(cc.stderr, "\n%s\n", diag)

			violations++
		}
	}

	if violations > 0 {
		return &ExitCodeError{Code: violations}
	}

	return nil
}

// lintCrate runs clippy for one crate and returns its stderr. Clippy
// exits nonzero when it finds lints, so the exit status is ignored; only
// a failure to start the subprocess is reported.
func (cc *ClippyCommand) lintCrate(cargoToml string, extraArgs []string) (string, error) {
	args := []string{"clippy", "--no-deps", "--quiet", "--manifest-path", cargoToml}
	for _, arg := range extraArgs {
		args = append(args, os.ExpandEnv(arg))
	}

	cmd := exec.Command("cargo", args...)

	var stderrBuf bytes.Buffer

	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return "", fmt.Errorf("cargo clippy %s: %w", cargoToml, runErr)
		}
	}

	return stderrBuf.String(), nil
}

// groupByManifest buckets the files under their nearest enclosing
// Cargo.toml. Files with no manifest are skipped.
func groupByManifest(files []string) map[string][]string {
	grouped := map[string][]string{}

	for _, file := range files {
		cargoToml, found := manifest.FindManifest(file)
		if !found {
			continue
		}

		grouped[cargoToml] = append(grouped[cargoToml], file)
	}

	return grouped
}

// filterDiagnostics keeps the blank-line-separated diagnostic blocks whose
// location line points at one of the given files.
func filterDiagnostics(clippyStderr string, files []string) []string {
	var kept []string

	for _, block := range strings.Split(clippyStderr, "\n\n") {
		captures := diagnosticFile.FindStringSubmatch(block)
		if captures == nil {
			continue
		}

		located := captures[1]

		for _, file := range files {
			if strings.HasSuffix(file, located) {
				kept = append(kept, strings.TrimRight(block, "\n"))

				break
			}
		}
	}

	return kept
}
