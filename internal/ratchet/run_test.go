package ratchet_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintgate/lintgate/internal/baseline"
	"github.com/lintgate/lintgate/internal/ratchet"
	"github.com/lintgate/lintgate/internal/scanner"
)

type runResult struct {
	code   int
	err    error
	store  *baseline.MemStore
	stdout string
	stderr string
}

func runRatchet(t *testing.T, seed baseline.Ledger, files []string, updateAnyway bool) runResult {
	t.Helper()

	store := baseline.NewMemStore(seed)

	var stdout, stderr bytes.Buffer

	code, runErr := ratchet.Run(context.Background(), store, scanner.New(), files, ratchet.Options{
		UpdateAnyway: updateAnyway,
		BaselinePath: ".therug.yaml",
		Stdout:       &stdout,
		Stderr:       &stderr,
	})

	return runResult{
		code:   code,
		err:    runErr,
		store:  store,
		stdout: stdout.String(),
		stderr: stderr.String(),
	}
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRun_ExpectedDoesNotPersist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "a.rs", "#[allow(dead_code)]\nfn f() {}\n")

	result := runRatchet(t, baseline.Ledger{path: {"dead_code": 1}}, []string{path}, false)

	require.NoError(t, result.err)
	assert.Equal(t, ratchet.ExitExpected, result.code)
	assert.Zero(t, result.store.Saves())
	assert.Empty(t, result.stdout)
	assert.Empty(t, result.stderr)
}

func TestRun_RegressionRejectsWithoutPersisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "a.rs", `
#[allow(dead_code)]
fn f() {}

#[allow(dead_code)]
fn g() {}
`)

	result := runRatchet(t, baseline.Ledger{path: {"dead_code": 1}}, []string{path}, false)

	require.NoError(t, result.err)
	assert.Equal(t, ratchet.ExitNotASubset, result.code)
	assert.Zero(t, result.store.Saves())
	assert.Contains(t, result.stderr, "Cannot allow(dead_code) count to increase in "+path)
}

func TestRun_NewSuppressionRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "a.rs", "#[allow(deprecated)]\nfn f() {}\n")

	result := runRatchet(t, baseline.Ledger{}, []string{path}, false)

	require.NoError(t, result.err)
	assert.Equal(t, ratchet.ExitNotASubset, result.code)
	assert.Zero(t, result.store.Saves())
	assert.Contains(t, result.stderr, "Cannot suppress new lints in "+path)
}

func TestRun_ImprovementShrinksAndPersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "a.rs", "#[allow(deprecated)]\nfn f() {}\n")

	result := runRatchet(t, baseline.Ledger{path: {"deprecated": 5}}, []string{path}, false)

	require.NoError(t, result.err)
	assert.Equal(t, ratchet.ExitProperSubset, result.code)
	assert.Equal(t, 1, result.store.Saves())
	assert.Equal(t, 1, result.store.Ledger()[path]["deprecated"])
	assert.Contains(t, result.stdout, "git add .therug.yaml")
}

func TestRun_FullResolutionReported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "a.rs", "fn f() {}\n")

	result := runRatchet(t, baseline.Ledger{path: {"deprecated": 5}}, []string{path}, false)

	require.NoError(t, result.err)
	assert.Equal(t, ratchet.ExitProperSubset, result.code)
	assert.Contains(t, result.stderr, "allow(deprecated) fully resolved in "+path)
	assert.Equal(t, 0, result.store.Ledger()[path]["deprecated"])
}

func TestRun_OverrideGrowsButStillRejects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "a.rs", "#[allow(deprecated)]\nfn f() {}\n")

	result := runRatchet(t, baseline.Ledger{}, []string{path}, true)

	require.NoError(t, result.err)
	assert.Equal(t, ratchet.ExitNotASubset, result.code)
	assert.Equal(t, 1, result.store.Saves())
	assert.Equal(t, 1, result.store.Ledger()[path]["deprecated"])
}

func TestRun_UntouchedBaselineEntrySurvivesShrink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "a.rs", "fn f() {}\n")

	seed := baseline.Ledger{
		path:       {"deprecated": 5},
		"other.rs": {"dead_code": 9},
	}

	result := runRatchet(t, seed, []string{path}, false)

	require.NoError(t, result.err)
	assert.Equal(t, ratchet.ExitProperSubset, result.code)
	assert.Equal(t, 9, result.store.Ledger()["other.rs"]["dead_code"])
}

func TestRun_ParseErrorAbortsBeforeComparison(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "broken.rs", "fn f( {")

	result := runRatchet(t, baseline.Ledger{}, []string{path}, true)

	var parseErr *scanner.ParseError

	require.ErrorAs(t, result.err, &parseErr)
	assert.Zero(t, result.store.Saves())
}

func TestRun_RerunAfterShrinkIsExpected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir, "a.rs", "#[allow(deprecated)]\nfn f() {}\n")

	store := baseline.NewMemStore(baseline.Ledger{path: {"deprecated": 5}})

	var discard bytes.Buffer

	opts := ratchet.Options{BaselinePath: ".therug.yaml", Stdout: &discard, Stderr: &discard}

	first, firstErr := ratchet.Run(context.Background(), store, scanner.New(), []string{path}, opts)
	require.NoError(t, firstErr)
	require.Equal(t, ratchet.ExitProperSubset, first)

	second, secondErr := ratchet.Run(context.Background(), store, scanner.New(), []string{path}, opts)
	require.NoError(t, secondErr)
	assert.Equal(t, ratchet.ExitExpected, second)
}
