package budgets

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/checkbook-etl/pkg/load"
	"github.com/iota-uz/checkbook-etl/pkg/sheet"
)

const budgetsCSV = "\ufeffBudget Period,Agency,Fund,Program,Activity,Available Amount,Obligated Amount,Spend Amount,Remaining Amount,Budget Amount,Budget Remaining Amount\n" +
	"2025,Revenue,General,Tax,Collections,\"1,000.00\",200,300,500,\"1,000.00\",500\n" +
	"2025,Health,,Clinics,-,0,0,bad,0,0,0\n" +
	"n/a,Broken,General,X,Y,1,1,1,1,1,1\n"

func readTestCSV(t *testing.T) *sheet.CSVTable {
	t.Helper()
	table, err := sheet.ReadCSVTable("budgets-2025", strings.NewReader(budgetsCSV))
	require.NoError(t, err)
	return table
}

func TestExtract(t *testing.T) {
	records, stats, err := Extract(readTestCSV(t), "budgets-2025")
	require.NoError(t, err)

	require.Equal(t, 3, stats.Rows)
	require.Equal(t, 1, stats.Skipped, "unparsable budget period drops the row")
	require.Len(t, records, 2)

	rec := records[0]
	require.Equal(t, int64(2025), rec["budget_period"])
	require.Equal(t, "Revenue", rec["agency"])
	require.True(t, rec["available_amount"].(decimal.Decimal).Equal(decimal.RequireFromString("1000.00")))
	require.True(t, rec["spend_amount"].(decimal.Decimal).Equal(decimal.New(300, 0)))

	rec = records[1]
	require.Nil(t, rec["fund"], "empty cell is null")
	require.Nil(t, rec["activity"], "dash placeholder is null")
	require.True(t, rec["spend_amount"].(decimal.Decimal).IsZero(), "unparsable amount defaults to zero")

	for _, rec := range records {
		for _, col := range Columns {
			require.Contains(t, rec, col)
		}
	}
}

func TestExtractMissingPeriodColumn(t *testing.T) {
	table, err := sheet.ReadCSVTable("b", strings.NewReader("Agency,Fund\nRevenue,General\n"))
	require.NoError(t, err)
	_, _, err = Extract(table, "b")
	require.Error(t, err)
}

func TestTableName(t *testing.T) {
	require.Equal(t, "checkbook.budgets", TableName("checkbook"))
	require.Equal(t, "budgets", TableName(""))
}

func TestCSVPath(t *testing.T) {
	require.Equal(t,
		filepath.Join("data", "Budget", "2025_ALL_budgets.csv"),
		CSVPath("data", 2025))
}

type countingStore struct {
	rows int
}

func (s *countingStore) Upsert(_ context.Context, _ string, _ []string, rows [][]any, _ []string, _ load.ConflictPolicy) (int64, error) {
	s.rows += len(rows)
	return int64(len(rows)), nil
}

func (s *countingStore) Insert(_ context.Context, _ string, _ []string, rows [][]any) (int64, error) {
	s.rows += len(rows)
	return int64(len(rows)), nil
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Budget"), 0o755))
	require.NoError(t, os.WriteFile(CSVPath(dir, 2025), []byte(budgetsCSV), 0o644))
	// 2026 intentionally absent.

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := &countingStore{}

	summaries := Run(context.Background(), Options{
		DataDir:        dir,
		Years:          []int{2025, 2026},
		Schema:         "checkbook",
		BatchSize:      10,
		ConflictPolicy: load.Skip,
		Store:          store,
		Logger:         logger,
	})

	require.Len(t, summaries, 2)
	require.NoError(t, summaries[0].Err)
	require.Equal(t, 2, summaries[0].Load.Succeeded)
	require.Equal(t, 1, summaries[0].Stats.Skipped)
	require.True(t, summaries[1].Skipped, "missing csv skips the year, not the run")
	require.Equal(t, 2, store.rows)
}
