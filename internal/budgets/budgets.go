// Package budgets implements ingestion of the yearly budget CSV exports
// into the budgets table. Unlike payroll there is no join step: one CSV row
// becomes one record, keyed for duplicate suppression on the full column
// tuple.
package budgets

import (
	"errors"

	"github.com/iota-uz/checkbook-etl/pkg/etl"
	"github.com/iota-uz/checkbook-etl/pkg/normalize"
	"github.com/iota-uz/checkbook-etl/pkg/sheet"
)

type csvColumn struct {
	src    string // CSV header
	dst    string // budgets table column
	amount bool   // decimal with zero default
}

var csvColumns = []csvColumn{
	{src: "Budget Period", dst: "budget_period"},
	{src: "Agency", dst: "agency"},
	{src: "Fund", dst: "fund"},
	{src: "Program", dst: "program"},
	{src: "Activity", dst: "activity"},
	{src: "Available Amount", dst: "available_amount", amount: true},
	{src: "Obligated Amount", dst: "obligated_amount", amount: true},
	{src: "Spend Amount", dst: "spend_amount", amount: true},
	{src: "Remaining Amount", dst: "remaining_amount", amount: true},
	{src: "Budget Amount", dst: "budget_amount", amount: true},
	{src: "Budget Remaining Amount", dst: "budget_remaining_amount", amount: true},
}

// Columns is the budgets table column list in insert order.
var Columns = []string{
	"budget_period", "agency", "fund", "program", "activity",
	"available_amount", "obligated_amount", "spend_amount",
	"remaining_amount", "budget_amount", "budget_remaining_amount",
}

// NaturalKey spans every column: the export has no narrower business key,
// so idempotence means exact-duplicate suppression.
var NaturalKey = Columns

// TableName qualifies the budgets table with the configured schema.
func TableName(schema string) string {
	if schema == "" {
		return "budgets"
	}
	return schema + ".budgets"
}

type mapper struct {
	fields    []boundColumn
	periodIdx int
}

type boundColumn struct {
	idx    int
	dst    string
	amount bool
}

func newMapper(header []string) (*mapper, error) {
	m := &mapper{periodIdx: -1}
	for _, col := range csvColumns {
		idx := sheet.ColumnIndex(header, col.src)
		m.fields = append(m.fields, boundColumn{idx: idx, dst: col.dst, amount: col.amount})
		if col.dst == "budget_period" {
			m.periodIdx = idx
		}
	}
	if m.periodIdx < 0 {
		return nil, errors.New("budget csv: Budget Period column missing")
	}
	return m, nil
}

// Map normalizes one CSV row. ok is false when the budget period does not
// parse as an integer; such rows are skipped and counted.
func (m *mapper) Map(row sheet.Row) (etl.Record, bool) {
	period, err := normalize.Integer(row.At(m.periodIdx))
	if err != nil {
		return nil, false
	}
	rec := make(etl.Record, len(m.fields))
	rec["budget_period"] = period
	for _, f := range m.fields {
		if f.dst == "budget_period" {
			continue
		}
		if f.amount {
			rec[f.dst] = normalize.Wage(row.At(f.idx))
			continue
		}
		if v, err := normalize.Text(row.At(f.idx)); err == nil {
			rec[f.dst] = v
		} else {
			rec[f.dst] = nil
		}
	}
	return rec, true
}
