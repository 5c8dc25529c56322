package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The loader's ON CONFLICT targets include nullable columns (record_nbr, the
// budgets text columns). A plain UNIQUE constraint treats NULLs as distinct,
// so re-running an import would duplicate such rows; the constraints must be
// declared NULLS NOT DISTINCT for the upsert to be idempotent.
func TestConflictTargetConstraintsTreatNullsAsEqual(t *testing.T) {
	cases := []struct {
		file       string
		constraint string
		columns    []string
	}{
		{
			file:       "00002_create_payroll.sql",
			constraint: "payroll_unique_record",
			columns:    []string{"temporary_id", "record_nbr", "fiscal_year"},
		},
		{
			file:       "00003_create_budgets.sql",
			constraint: "budgets_unique_row",
			columns: []string{
				"budget_period", "agency", "fund", "program", "activity",
				"available_amount", "obligated_amount", "spend_amount",
				"remaining_amount", "budget_amount", "budget_remaining_amount",
			},
		},
	}

	for _, tc := range cases {
		raw, err := FS.ReadFile(tc.file)
		require.NoError(t, err)
		sql := string(raw)

		i := strings.Index(sql, "CONSTRAINT "+tc.constraint)
		require.GreaterOrEqual(t, i, 0, "%s: constraint %s missing", tc.file, tc.constraint)

		decl := sql[i:]
		if end := strings.Index(decl, ");"); end >= 0 {
			decl = decl[:end]
		}
		require.Contains(t, decl, "UNIQUE NULLS NOT DISTINCT", "%s: %s", tc.file, tc.constraint)
		for _, col := range tc.columns {
			require.Contains(t, decl, col, "%s: %s misses column", tc.file, tc.constraint)
		}
	}
}
