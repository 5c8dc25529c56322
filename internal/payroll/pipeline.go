package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/checkbook-etl/pkg/etl"
	"github.com/iota-uz/checkbook-etl/pkg/load"
	"github.com/iota-uz/checkbook-etl/pkg/sheet"
)

// ExtractStats counts what happened to the raw rows of one workbook before
// loading.
type ExtractStats struct {
	RosterRows   int // HR INFO data rows read
	DetailRows   int // EARNINGS data rows read
	SkippedRows  int // rows dropped for a missing identifier (both sheets)
	Combined     int // records after the join
	JoinDropped  int // roster records dropped by the join itself
	ActiveColumn string
}

// Extract reads, normalizes and joins one fiscal year's workbook. A missing
// required sheet or identifier column is a structural error: the dataset is
// unusable and nothing is returned.
func Extract(p sheet.Provider, fiscalYear string, policy etl.DuplicatePolicy) ([]etl.Record, ExtractStats, error) {
	var stats ExtractStats

	hrSheet, err := sheet.FindSheet(p.Sheets(), HRSheetPattern)
	if err != nil {
		return nil, stats, err
	}
	earnSheet, err := sheet.FindSheet(p.Sheets(), EarningsSheetPattern)
	if err != nil {
		return nil, stats, err
	}

	hrHeader, err := p.Header(hrSheet)
	if err != nil {
		return nil, stats, err
	}
	hr, err := newHRMapper(hrHeader)
	if err != nil {
		return nil, stats, err
	}
	if name, _, err := sheet.FindColumn(hrHeader, ActiveColumnPattern); err == nil {
		stats.ActiveColumn = name
	}

	var roster []etl.Record
	err = p.EachRow(hrSheet, func(rownum int, row sheet.Row) error {
		stats.RosterRows++
		if rec, ok := hr.Map(row); ok {
			roster = append(roster, rec)
		} else {
			stats.SkippedRows++
		}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", hrSheet, err)
	}

	earnHeader, err := p.Header(earnSheet)
	if err != nil {
		return nil, stats, err
	}
	earn, err := newEarningsMapper(earnHeader)
	if err != nil {
		return nil, stats, err
	}

	var detail []etl.Record
	err = p.EachRow(earnSheet, func(rownum int, row sheet.Row) error {
		stats.DetailRows++
		if rec, ok := earn.Map(row); ok {
			detail = append(detail, rec)
		} else {
			stats.SkippedRows++
		}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", earnSheet, err)
	}

	combined, dropped := etl.Join(roster, detail, etl.JoinSpec{
		Key:          "temporary_id",
		DetailFields: WageFields,
		Defaults:     wageDefaults(),
		Policy:       policy,
	})
	stats.JoinDropped = dropped
	stats.SkippedRows += dropped
	stats.Combined = len(combined)

	for _, rec := range combined {
		rec["fiscal_year"] = fiscalYear
	}
	return combined, stats, nil
}

// Options configure a multi-year payroll import run.
type Options struct {
	DataDir         string
	Years           []int
	Schema          string
	BatchSize       int
	ConflictPolicy  load.ConflictPolicy
	DuplicatePolicy etl.DuplicatePolicy
	Store           load.Store
	Logger          logrus.FieldLogger
}

// YearSummary is the per-dataset outcome of a run.
type YearSummary struct {
	Year    int
	Stats   ExtractStats
	Load    load.Result
	Skipped bool // workbook file absent
	Err     error
}

// WorkbookPath locates the fiscal year's export under the data directory.
// The directory name preserves the portal's own spelling.
func WorkbookPath(dataDir string, year int) string {
	return filepath.Join(dataDir, "State Payrole", fmt.Sprintf("fiscal-year-%d.xlsx", year))
}

// Run imports every requested fiscal year. A structural failure in one
// year's workbook aborts only that year; other years proceed. Already
// committed batches are never rolled back, which is safe because loads are
// idempotent on the natural key.
func Run(ctx context.Context, opts Options) []YearSummary {
	runID := uuid.New()
	logger := opts.Logger.WithFields(logrus.Fields{
		"run_id":   runID,
		"conflict": opts.ConflictPolicy.String(),
		"dup":      opts.DuplicatePolicy.String(),
	})
	loader := load.NewLoader(opts.Store, opts.BatchSize, logger)
	table := TableName(opts.Schema)

	summaries := make([]YearSummary, 0, len(opts.Years))
	for _, year := range opts.Years {
		summary := YearSummary{Year: year}
		yearLogger := logger.WithField("fiscal_year", year)

		path := WorkbookPath(opts.DataDir, year)
		if _, err := os.Stat(path); err != nil {
			yearLogger.WithField("path", path).Warn("workbook not found, skipping year")
			summary.Skipped = true
			summaries = append(summaries, summary)
			continue
		}

		wb, err := sheet.OpenWorkbook(path)
		if err != nil {
			yearLogger.WithError(err).Error("cannot open workbook")
			summary.Err = err
			summaries = append(summaries, summary)
			continue
		}

		combined, stats, err := Extract(wb, fmt.Sprintf("%d", year), opts.DuplicatePolicy)
		_ = wb.Close()
		summary.Stats = stats
		if err != nil {
			yearLogger.WithError(err).Error("extract failed")
			summary.Err = err
			summaries = append(summaries, summary)
			continue
		}
		yearLogger.WithFields(logrus.Fields{
			"roster":   stats.RosterRows,
			"detail":   stats.DetailRows,
			"combined": stats.Combined,
			"skipped":  stats.SkippedRows,
		}).Info("extract complete")

		summary.Load = loader.Load(ctx, table, Columns, combined, NaturalKey, opts.ConflictPolicy)
		yearLogger.WithFields(logrus.Fields{
			"succeeded": summary.Load.Succeeded,
			"failed":    summary.Load.Failed,
			"committed": summary.Load.Committed,
		}).Info("year loaded")
		summaries = append(summaries, summary)
	}
	return summaries
}

// AuditYear computes the pre-flight quality report for one workbook without
// touching the store.
func AuditYear(p sheet.Provider, fiscalYear string, policy etl.DuplicatePolicy) (etl.AuditReport, ExtractStats, error) {
	combined, stats, err := Extract(p, fiscalYear, policy)
	if err != nil {
		return etl.AuditReport{}, stats, err
	}
	report := etl.Audit(combined, etl.AuditSpec{
		Required:   []string{"temporary_id", "employee_name", "agency_name"},
		GroupField: "agency_name",
		KeyFields:  []string{"temporary_id", "record_nbr"},
	})
	return report, stats, nil
}
