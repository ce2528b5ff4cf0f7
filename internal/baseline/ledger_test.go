package baseline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintgate/lintgate/internal/baseline"
)

func TestLedger_FilesSorted(t *testing.T) {
	t.Parallel()

	ledger := baseline.Ledger{
		"src/z.rs": {"dead_code": 1},
		"src/a.rs": {"dead_code": 2},
		"src/m.rs": {},
	}

	assert.Equal(t, []string{"src/a.rs", "src/m.rs", "src/z.rs"}, ledger.Files())
}

func TestLintCounts_LintsSorted(t *testing.T) {
	t.Parallel()

	counts := baseline.LintCounts{"unused_mut": 1, "dead_code": 3, "deprecated": 2}

	assert.Equal(t, []string{"dead_code", "deprecated", "unused_mut"}, counts.Lints())
}

func TestLedger_Total(t *testing.T) {
	t.Parallel()

	ledger := baseline.Ledger{
		"a.rs": {"dead_code": 2, "deprecated": 1},
		"b.rs": {"dead_code": 4},
	}

	assert.Equal(t, 7, ledger.Total())
	assert.Equal(t, 0, baseline.Ledger{}.Total())
}

func TestLedger_CloneIsDeep(t *testing.T) {
	t.Parallel()

	original := baseline.Ledger{"a.rs": {"dead_code": 2}}
	clone := original.Clone()

	clone["a.rs"]["dead_code"] = 99
	clone["b.rs"] = baseline.LintCounts{"deprecated": 1}

	assert.Equal(t, 2, original["a.rs"]["dead_code"])
	assert.NotContains(t, original, "b.rs")
}
