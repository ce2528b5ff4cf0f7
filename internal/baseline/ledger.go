// Package baseline holds the suppression ledger data model and its
// persistent store. The ledger records, per file and per lint, how many
// suppressed warnings previous commits were allowed to carry.
package baseline

import "sort"

// LintCounts maps a lint name (e.g. "dead_code") to a non-negative
// suppression count.
type LintCounts map[string]int

// Ledger maps a file path, exactly as supplied by the invoker, to the
// suppression counts observed or accepted for that file. Paths are not
// canonicalized. A file entry with an empty LintCounts is equivalent to
// the file being absent.
type Ledger map[string]LintCounts

// Files returns the ledger's file paths in sorted order.
func (l Ledger) Files() []string {
	files := make([]string, 0, len(l))
	for file := range l {
		files = append(files, file)
	}

	sort.Strings(files)

	return files
}

// Lints returns the lint names for one file in sorted order.
func (c LintCounts) Lints() []string {
	lints := make([]string, 0, len(c))
	for lint := range c {
		lints = append(lints, lint)
	}

	sort.Strings(lints)

	return lints
}

// Total returns the sum of all counts in the ledger.
func (l Ledger) Total() int {
	total := 0

	for _, counts := range l {
		for _, n := range counts {
			total += n
		}
	}

	return total
}

// Clone returns a deep copy of the ledger.
func (l Ledger) Clone() Ledger {
	clone := make(Ledger, len(l))

	for file, counts := range l {
		cc := make(LintCounts, len(counts))
		for lint, n := range counts {
			cc[lint] = n
		}

		clone[file] = cc
	}

	return clone
}
