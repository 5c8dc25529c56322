package payroll

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/checkbook-etl/pkg/etl"
	"github.com/iota-uz/checkbook-etl/pkg/normalize"
	"github.com/iota-uz/checkbook-etl/pkg/sheet"
)

// hrMapper turns HR INFO rows into normalized roster records using column
// positions resolved once per sheet header.
type hrMapper struct {
	fields []boundColumn
	idIdx  int
}

type boundColumn struct {
	idx  int
	dst  string
	kind fieldKind
}

// newHRMapper binds the HR column map to a concrete header. Unknown columns
// in the sheet are ignored; a mapped column absent from the header yields
// nulls for its field. The identifier column is required; the year-varying
// active column is optional (some early files ship without it).
func newHRMapper(header []string) (*hrMapper, error) {
	m := &hrMapper{idIdx: -1}
	for _, col := range hrColumns {
		idx := sheet.ColumnIndex(header, col.src)
		m.fields = append(m.fields, boundColumn{idx: idx, dst: col.dst, kind: col.kind})
		if col.src == identifierColumn {
			m.idIdx = idx
		}
	}
	if m.idIdx < 0 {
		return nil, errors.New("HR INFO sheet: TEMPORARY_ID column missing")
	}

	activeIdx := -1
	if _, idx, err := sheet.FindColumn(header, ActiveColumnPattern); err == nil {
		activeIdx = idx
	}
	m.fields = append(m.fields, boundColumn{idx: activeIdx, dst: "active_on_june_30", kind: kindText})
	return m, nil
}

// Map normalizes one HR row. ok is false when the row has no usable
// identifier; such rows are skipped, not errored.
func (m *hrMapper) Map(row sheet.Row) (etl.Record, bool) {
	if _, err := normalize.Text(row.At(m.idIdx)); err != nil {
		return nil, false
	}
	rec := make(etl.Record, len(m.fields))
	for _, f := range m.fields {
		rec[f.dst] = normalizeField(row.At(f.idx), f.kind)
	}
	return rec, true
}

// normalizeField applies the per-kind parser and performs the null/default
// resolution in one place: blank and unparsable values become nil for every
// kind handled here (wage defaulting lives in the earnings mapper).
func normalizeField(c sheet.Cell, kind fieldKind) any {
	switch kind {
	case kindInteger:
		v, err := normalize.Integer(c)
		if err != nil {
			return nil
		}
		return v
	case kindDecimal:
		v, err := normalize.Decimal(c)
		if err != nil {
			return nil
		}
		return v
	case kindDateSerial:
		v, err := normalize.DateSerial(c)
		if err != nil {
			return nil
		}
		return v
	case kindHireDateText:
		v, err := normalize.HireDateText(c)
		if err != nil {
			return nil
		}
		return v
	default:
		v, err := normalize.Text(c)
		if err != nil {
			return nil
		}
		return v
	}
}

// earningsMapper turns EARNINGS rows into detail records: the identifier
// plus the four wage columns, with blank or unparsable wages as zero.
type earningsMapper struct {
	idIdx int
	wages []boundColumn
}

func newEarningsMapper(header []string) (*earningsMapper, error) {
	idIdx := sheet.ColumnIndex(header, identifierColumn)
	if idIdx < 0 {
		return nil, errors.New("EARNINGS sheet: TEMPORARY_ID column missing")
	}
	m := &earningsMapper{idIdx: idIdx}
	for src, dst := range earningsColumns {
		m.wages = append(m.wages, boundColumn{idx: sheet.ColumnIndex(header, src), dst: dst})
	}
	return m, nil
}

func (m *earningsMapper) Map(row sheet.Row) (etl.Record, bool) {
	id, err := normalize.Text(row.At(m.idIdx))
	if err != nil {
		return nil, false
	}
	rec := etl.Record{"temporary_id": id}
	for _, w := range m.wages {
		rec[w.dst] = normalize.Wage(row.At(w.idx))
	}
	return rec, true
}

// wageDefaults are the detail-side zero values used when a roster
// identifier has no earnings row.
func wageDefaults() map[string]any {
	defaults := make(map[string]any, len(WageFields))
	for _, f := range WageFields {
		defaults[f] = decimal.Zero
	}
	return defaults
}
