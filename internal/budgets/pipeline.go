package budgets

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

// ExtractStats counts the raw rows of one budget CSV.
type ExtractStats struct {
	Rows    int
	Skipped int // rows with an unparsable budget period
}

// Extract reads and normalizes one budget CSV table.
func Extract(p sheet.Provider, name string) ([]etl.Record, ExtractStats, error) {
	var stats ExtractStats

	header, err := p.Header(name)
	if err != nil {
		return nil, stats, err
	}
	m, err := newMapper(header)
	if err != nil {
		return nil, stats, err
	}

	var records []etl.Record
	err = p.EachRow(name, func(rownum int, row sheet.Row) error {
		stats.Rows++
		if rec, ok := m.Map(row); ok {
			records = append(records, rec)
		} else {
			stats.Skipped++
		}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", name, err)
	}
	return records, stats, nil
}

// Options configure a multi-year budgets import run.
type Options struct {
	DataDir        string
	Years          []int
	Schema         string
	BatchSize      int
	ConflictPolicy load.ConflictPolicy
	Store          load.Store
	Logger         logrus.FieldLogger
}

// YearSummary is the per-file outcome of a run.
type YearSummary struct {
	Year    int
	Stats   ExtractStats
	Load    load.Result
	Skipped bool // file absent
	Err     error
}

// CSVPath locates the year's budget export under the data directory.
func CSVPath(dataDir string, year int) string {
	return filepath.Join(dataDir, "Budget", fmt.Sprintf("%d_ALL_budgets.csv", year))
}

// Run imports every requested budget year. Failures are per year; other
// years proceed.
func Run(ctx context.Context, opts Options) []YearSummary {
	runID := uuid.New()
	logger := opts.Logger.WithFields(logrus.Fields{
		"run_id":   runID,
		"conflict": opts.ConflictPolicy.String(),
	})
	loader := load.NewLoader(opts.Store, opts.BatchSize, logger)
	table := TableName(opts.Schema)

	summaries := make([]YearSummary, 0, len(opts.Years))
	for _, year := range opts.Years {
		summary := YearSummary{Year: year}
		yearLogger := logger.WithField("budget_period", year)

		path := CSVPath(opts.DataDir, year)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				yearLogger.WithField("path", path).Warn("csv not found, skipping year")
				summary.Skipped = true
			} else {
				yearLogger.WithError(err).Error("cannot open csv")
				summary.Err = err
			}
			summaries = append(summaries, summary)
			continue
		}

		csvTable, err := sheet.ReadCSVTable(fmt.Sprintf("budgets-%d", year), f)
		_ = f.Close()
		if err != nil {
			yearLogger.WithError(err).Error("cannot read csv")
			summary.Err = err
			summaries = append(summaries, summary)
			continue
		}

		records, stats, err := Extract(csvTable, csvTable.Sheets()[0])
		summary.Stats = stats
		if err != nil {
			yearLogger.WithError(err).Error("extract failed")
			summary.Err = err
			summaries = append(summaries, summary)
			continue
		}
		yearLogger.WithFields(logrus.Fields{
			"rows":    stats.Rows,
			"skipped": stats.Skipped,
		}).Info("extract complete")

		summary.Load = loader.Load(ctx, table, Columns, records, NaturalKey, opts.ConflictPolicy)
		yearLogger.WithFields(logrus.Fields{
			"succeeded": summary.Load.Succeeded,
			"failed":    summary.Load.Failed,
			"committed": summary.Load.Committed,
		}).Info("year loaded")
		summaries = append(summaries, summary)
	}
	return summaries
}
