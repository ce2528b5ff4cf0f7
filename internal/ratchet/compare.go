// Package ratchet implements the one-directional improvement gate over
// suppressed lints: compared to the persisted baseline, the observed
// counts may shrink or hold steady, never grow.
package ratchet

import "github.com/lintgate/lintgate/internal/baseline"

// Relationship classifies the observed ledger against the baseline.
type Relationship int

const (
	// Expected means observed matches baseline exactly for the examined files.
	Expected Relationship = iota
	// ProperSubset means at least one count shrank and none grew.
	ProperSubset
	// NotASubset means a suppression was added or a count grew.
	NotASubset
)

func (r Relationship) String() string {
	switch r {
	case Expected:
		return "expected"
	case ProperSubset:
		return "proper-subset"
	case NotASubset:
		return "not-a-subset"
	default:
		return "unknown"
	}
}

// Offender identifies the first regression found. NewLint marks a
// suppression the baseline has no entry for; KnownFile then distinguishes
// a new lint in an already-tracked file from a wholly untracked file.
type Offender struct {
	File      string
	Lint      string
	Observed  int
	Base      int
	NewLint   bool
	KnownFile bool
}

// Resolution records a suppression fully absent from the observed ledger
// that the baseline still carries.
type Resolution struct {
	File string
	Lint string
	Base int
}

// Verdict is the comparison result. Offender is set only for NotASubset;
// Resolved lists fully-resolved suppressions found for ProperSubset.
type Verdict struct {
	Rel      Relationship
	Offender *Offender
	Resolved []Resolution
}

// Compare classifies observed against base for the examined files. It is
// a pure function: no I/O, no mutation of either ledger.
//
// Pass 1 walks the observed counts in sorted order and short-circuits on
// the first regression, so the reported offender is deterministic and no
// further files are evaluated. Pass 2 runs only on a clean pass 1 and
// detects improvements by omission: baseline lints that the examined
// files no longer carry at all. Baseline entries for files outside
// examined are never consulted; the invoker only passes a subset of
// files per run, and their absence means nothing.
func Compare(observed, base baseline.Ledger, examined []string) Verdict {
	improved := false

	for _, file := range observed.Files() {
		counts := observed[file]
		baseCounts, knownFile := base[file]

		for _, lint := range counts.Lints() {
			n := counts[lint]

			bn, known := baseCounts[lint]
			if !known {
				if n > 0 {
					return Verdict{
						Rel:      NotASubset,
						Offender: &Offender{File: file, Lint: lint, Observed: n, NewLint: true, KnownFile: knownFile},
					}
				}

				continue
			}

			switch {
			case n > bn:
				return Verdict{
					Rel:      NotASubset,
					Offender: &Offender{File: file, Lint: lint, Observed: n, Base: bn, KnownFile: true},
				}
			case n < bn:
				improved = true
			}
		}
	}

	var resolved []Resolution

	for _, file := range examined {
		baseCounts, known := base[file]
		if !known {
			continue
		}

		counts := observed[file]

		for _, lint := range baseCounts.Lints() {
			// A zero baseline count has nothing left to resolve; skipping it
			// keeps re-runs on unchanged inputs at Expected.
			if baseCounts[lint] > 0 && counts[lint] == 0 {
				improved = true

				resolved = append(resolved, Resolution{File: file, Lint: lint, Base: baseCounts[lint]})
			}
		}
	}

	if improved {
		return Verdict{Rel: ProperSubset, Resolved: resolved}
	}

	return Verdict{Rel: Expected}
}
