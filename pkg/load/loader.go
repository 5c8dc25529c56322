// Package load persists combined record sets in fixed-size batches with
// idempotent conflict handling on a composite natural key.
package load

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/checkbook-etl/pkg/etl"
)

// DefaultBatchSize matches the upstream load-call size limit.
const DefaultBatchSize = 1000

// ConflictPolicy decides what happens when a record's natural key already
// exists in the store.
type ConflictPolicy uint8

const (
	// Skip keeps the existing row (exact duplicate suppression).
	Skip ConflictPolicy = iota
	// Replace overwrites the existing row with the incoming one.
	Replace
)

func (p ConflictPolicy) String() string {
	if p == Replace {
		return "replace"
	}
	return "skip"
}

// CommittedUnknown is returned by a Store whose backend does not report how
// many rows a call actually committed; the loader then assumes the whole
// slice succeeded.
const CommittedUnknown int64 = -1

// Store is the persistence adapter contract. Upsert must honor conflict as
// an explicit conflict target; both calls return the backend-reported
// committed row count, or CommittedUnknown.
type Store interface {
	Upsert(ctx context.Context, table string, cols []string, rows [][]any, conflict []string, policy ConflictPolicy) (int64, error)
	Insert(ctx context.Context, table string, cols []string, rows [][]any) (int64, error)
}

// Result summarizes a load run. Committed is advisory: it is whatever the
// store reported per slice, with unknown counts taken as full-slice
// success.
type Result struct {
	Succeeded int
	Failed    int
	Committed int64
	Batches   int
}

// Loader partitions record sets into contiguous slices and persists each
// slice independently. A failed slice does not abort the run; slices
// committed before a later failure stay committed.
type Loader struct {
	store     Store
	batchSize int
	logger    logrus.FieldLogger
}

func NewLoader(store Store, batchSize int, logger logrus.FieldLogger) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{store: store, batchSize: batchSize, logger: logger}
}

// Load upserts records into table keyed on the conflict fields. Each slice
// gets one upsert attempt and, if the call itself fails, one plain-insert
// fallback; after that the slice's records are counted as failed and the
// run moves on. Slices are attempted strictly in input order.
func (l *Loader) Load(ctx context.Context, table string, cols []string, records []etl.Record, conflict []string, policy ConflictPolicy) Result {
	var res Result
	total := (len(records) + l.batchSize - 1) / l.batchSize

	for start := 0; start < len(records); start += l.batchSize {
		end := start + l.batchSize
		if end > len(records) {
			end = len(records)
		}
		rows := toRows(records[start:end], cols)
		res.Batches++

		fields := logrus.Fields{
			"table": table,
			"batch": res.Batches,
			"of":    total,
			"rows":  len(rows),
		}

		committed, err := l.store.Upsert(ctx, table, cols, rows, conflict, policy)
		if err != nil {
			l.logger.WithFields(fields).WithError(err).Warn("upsert failed, retrying as plain insert")
			committed, err = l.store.Insert(ctx, table, cols, rows)
		}
		if err != nil {
			l.logger.WithFields(fields).WithError(err).Error("batch failed")
			res.Failed += len(rows)
			continue
		}

		res.Succeeded += len(rows)
		if committed == CommittedUnknown {
			committed = int64(len(rows))
		}
		res.Committed += committed
		l.logger.WithFields(fields).WithField("committed", committed).Info("batch loaded")
	}
	return res
}

func toRows(records []etl.Record, cols []string) [][]any {
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(cols))
		for j, col := range cols {
			row[j] = rec[col]
		}
		rows[i] = row
	}
	return rows
}
