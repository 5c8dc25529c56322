package sheet

import (
	"strconv"
	"time"
)

// Kind discriminates the value stored in a Cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindDate
)

// Cell is a tagged variant for a single table cell. Source tables mix text,
// numbers and dates in the same column, so the raw value is carried with an
// explicit tag instead of being coerced at read time. Coercion happens once,
// in the normalize package.
type Cell struct {
	kind   Kind
	text   string
	number float64
	date   time.Time
}

func NullCell() Cell {
	return Cell{kind: KindNull}
}

func TextCell(s string) Cell {
	return Cell{kind: KindText, text: s}
}

func NumberCell(f float64) Cell {
	return Cell{kind: KindNumber, number: f}
}

func DateCell(t time.Time) Cell {
	return Cell{kind: KindDate, date: t}
}

func (c Cell) Kind() Kind       { return c.kind }
func (c Cell) IsNull() bool     { return c.kind == KindNull }
func (c Cell) Text() string     { return c.text }
func (c Cell) Number() float64  { return c.number }
func (c Cell) Date() time.Time  { return c.date }

// String renders the cell for logs and diagnostics.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.number, 'f', -1, 64)
	case KindDate:
		return c.date.Format(time.RFC3339)
	default:
		return ""
	}
}

// Row is one data row of a sheet, ordered to match the sheet header.
// A row may be shorter than the header when trailing cells are empty.
type Row []Cell

// At returns the cell at index i, or a null cell when the row is short.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return NullCell()
	}
	return r[i]
}
