package ratchet

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lintgate/lintgate/internal/baseline"
	"github.com/lintgate/lintgate/internal/scanner"
)

// Exit codes reported to the invoking hook.
const (
	// ExitExpected: nothing changed, no action needed.
	ExitExpected = 0
	// ExitNotASubset: commit rejected; the store is unchanged unless the
	// override directive grew it.
	ExitNotASubset = 1
	// ExitProperSubset: the store was rewritten; the invoker must re-stage
	// the persisted file and retry.
	ExitProperSubset = 2
)

var (
	offenderColor = color.New(color.FgRed)
	resolvedColor = color.New(color.FgGreen)
)

// Options configures one ratchet run.
type Options struct {
	// UpdateAnyway permits growing the baseline despite a regression. The
	// violation exit code is reported either way.
	UpdateAnyway bool

	// BaselinePath is quoted in the re-stage instruction.
	BaselinePath string

	Stdout io.Writer
	Stderr io.Writer
}

// Run executes one scan-compare-update cycle over the given files and
// returns the exit code for the invoking hook. A scan failure aborts the
// run before any comparison or persistence; a store failure while
// persisting is fatal and surfaced to the operator.
func Run(ctx context.Context, store baseline.Store, sc *scanner.Scanner, files []string, opts Options) (int, error) {
	observed, scanErr := sc.ScanFiles(ctx, files)
	if scanErr != nil {
		return ExitNotASubset, scanErr
	}

	base, loadErr := store.Load()
	if loadErr != nil {
		return ExitNotASubset, loadErr
	}

	verdict := Compare(observed, base, files)

	switch verdict.Rel {
	case ProperSubset:
		reportResolved(opts.Stderr, verdict.Resolved)
		Shrink(base, observed, files)

		if saveErr := store.Save(base); saveErr != nil {
			return ExitNotASubset, saveErr
		}

		fmt.Fprintf(opts.Stdout,
			"Thanks for enabling more lints! Please run `git add %s` and retry your commit.\n",
			opts.BaselinePath)

		return ExitProperSubset, nil

	case NotASubset:
		reportOffender(opts.Stderr, verdict.Offender)

		if opts.UpdateAnyway {
			Grow(base, observed)

			if saveErr := store.Save(base); saveErr != nil {
				return ExitNotASubset, saveErr
			}
		}

		return ExitNotASubset, nil

	default:
		return ExitExpected, nil
	}
}

func reportOffender(w io.Writer, offender *Offender) {
	if offender == nil {
		return
	}

	switch {
	case !offender.NewLint:
		offenderColor.Fprintf(w, "Cannot allow(%s) count to increase in %s (%d -> %d)\n",
			offender.Lint, offender.File, offender.Base, offender.Observed)
	case offender.KnownFile:
		offenderColor.Fprintf(w, "Cannot add allow(%s) to %s\n", offender.Lint, offender.File)
	default:
		offenderColor.Fprintf(w, "Cannot suppress new lints in %s\n", offender.File)
	}
}

func reportResolved(w io.Writer, resolved []Resolution) {
	for _, res := range resolved {
		resolvedColor.Fprintf(w, "allow(%s) fully resolved in %s\n", res.Lint, res.File)
	}
}
