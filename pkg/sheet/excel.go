package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook adapts an .xlsx file to the Provider contract using excelize's
// streaming row reader, so multi-hundred-thousand-row payroll sheets are not
// materialized in memory.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook opens an .xlsx file. The caller owns the returned Workbook
// and must Close it.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

// NewWorkbook wraps an already-open excelize file. Used by tests that build
// workbooks in memory.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{file: f}
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

func (w *Workbook) Header(sheet string) ([]string, error) {
	rows, err := w.file.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, fmt.Errorf("sheet %s: empty, no header row", sheet)
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sheet %s: header row: %w", sheet, err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	return header, nil
}

func (w *Workbook) EachRow(sheet string, fn func(rownum int, row Row) error) error {
	rows, err := w.file.Rows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	defer func() { _ = rows.Close() }()

	rownum := 0
	for rows.Next() {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, rownum+1, err)
		}
		if rownum == 0 {
			rownum++
			continue // header
		}
		row := make(Row, len(cols))
		for i, v := range cols {
			row[i] = tagRawValue(v)
		}
		if err := fn(rownum, row); err != nil {
			return err
		}
		rownum++
	}
	return rows.Error()
}

// tagRawValue classifies a raw cell value. Excel stores dates as numeric
// serials, so a date-formatted cell surfaces here as a number and is
// interpreted by the normalize package. A value is tagged as a number only
// when formatting the parsed float reproduces the raw string: id-like text
// such as "00123" must stay text, or leading zeros would be lost and
// distinct identifiers could collide.
func tagRawValue(v string) Cell {
	if v == "" {
		return NullCell()
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		if strconv.FormatFloat(f, 'f', -1, 64) == v {
			return NumberCell(f)
		}
	}
	return TextCell(v)
}
