package ratchet

import "github.com/lintgate/lintgate/internal/baseline"

// Shrink tightens base in place toward observed: for each examined file
// tracked by base, every lint count drops to the observed count when that
// is lower, with an absent observed lint treated as zero. Entries for
// files outside examined are left untouched regardless of their value, so
// a run over a partial change set can never loosen the rest of the
// ledger. Shrink never raises a count.
func Shrink(base, observed baseline.Ledger, examined []string) {
	for _, file := range examined {
		baseCounts, known := base[file]
		if !known {
			continue
		}

		counts := observed[file]

		for lint, bn := range baseCounts {
			if n := counts[lint]; n < bn {
				baseCounts[lint] = n
			}
		}
	}
}

// Grow loosens base in place to cover observed: every observed file/lint
// count raises the baseline to at least that value, inserting new file or
// lint entries as needed. Grow never lowers a count. It runs only under
// the explicit override directive; the violation is still reported.
func Grow(base, observed baseline.Ledger) {
	for file, counts := range observed {
		baseCounts, known := base[file]
		if !known {
			baseCounts = baseline.LintCounts{}
			base[file] = baseCounts
		}

		for lint, n := range counts {
			if n > baseCounts[lint] {
				baseCounts[lint] = n
			}
		}
	}
}
