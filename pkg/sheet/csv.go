package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVTable adapts a single CSV stream to the Provider contract as a
// one-sheet workbook. The whole file is read up front; the budget exports
// this is used for are a few megabytes at most.
type CSVTable struct {
	name   string
	header []string
	rows   [][]string
}

// ReadCSVTable reads a CSV stream into a table named name. A UTF-8 BOM on
// the first header cell is stripped; the government portal exports with one.
func ReadCSVTable(name string, r io.Reader) (*CSVTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s: empty, no header row", name)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	return &CSVTable{name: name, header: header, rows: records[1:]}, nil
}

func (t *CSVTable) Sheets() []string {
	return []string{t.name}
}

func (t *CSVTable) Header(sheet string) ([]string, error) {
	if sheet != t.name {
		return nil, fmt.Errorf("csv table %s: %w: %s", t.name, ErrSheetNotFound, sheet)
	}
	return t.header, nil
}

func (t *CSVTable) EachRow(sheet string, fn func(rownum int, row Row) error) error {
	if sheet != t.name {
		return fmt.Errorf("csv table %s: %w: %s", t.name, ErrSheetNotFound, sheet)
	}
	for i, rec := range t.rows {
		row := make(Row, len(rec))
		for j, v := range rec {
			if strings.TrimSpace(v) == "" {
				row[j] = NullCell()
			} else {
				row[j] = TextCell(v)
			}
		}
		if err := fn(i+1, row); err != nil {
			return err
		}
	}
	return nil
}
