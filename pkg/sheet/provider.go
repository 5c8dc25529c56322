package sheet

// Provider exposes a tabular data source as named sheets of rows. Row 1 of
// every sheet is the header and is not passed to EachRow.
type Provider interface {
	// Sheets lists the sheet names in workbook order.
	Sheets() []string
	// Header returns the ordered column labels of the sheet's first row.
	Header(sheet string) ([]string, error)
	// EachRow calls fn once per data row in sheet order. rownum is the
	// 1-based position within the data rows (the header is row 0 and is
	// skipped). Iteration stops on the first error fn returns.
	EachRow(sheet string, fn func(rownum int, row Row) error) error
}
