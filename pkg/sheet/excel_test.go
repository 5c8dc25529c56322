package sheet

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildTestWorkbook(t *testing.T) *Workbook {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "FY25 HR INFO"))
	_, err := f.NewSheet("FY25 EARNINGS")
	require.NoError(t, err)

	require.NoError(t, f.SetSheetRow("FY25 HR INFO", "A1", &[]any{" TEMPORARY_ID ", "RECORD_NBR", "EMPLOYEE_NAME"}))
	require.NoError(t, f.SetSheetRow("FY25 HR INFO", "A2", &[]any{"A00001", 0, "SMITH,JOHN"}))
	require.NoError(t, f.SetSheetRow("FY25 HR INFO", "A3", &[]any{"A00002"}))

	require.NoError(t, f.SetSheetRow("FY25 EARNINGS", "A1", &[]any{"TEMPORARY_ID", "TOTAL_WAGES"}))
	require.NoError(t, f.SetSheetRow("FY25 EARNINGS", "A2", &[]any{"A00001", 50000.25}))

	wb := NewWorkbook(f)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestWorkbookSheets(t *testing.T) {
	wb := buildTestWorkbook(t)
	require.Equal(t, []string{"FY25 HR INFO", "FY25 EARNINGS"}, wb.Sheets())
}

func TestWorkbookHeader(t *testing.T) {
	wb := buildTestWorkbook(t)
	header, err := wb.Header("FY25 HR INFO")
	require.NoError(t, err)
	require.Equal(t, []string{"TEMPORARY_ID", "RECORD_NBR", "EMPLOYEE_NAME"}, header, "header labels are trimmed")
}

func TestWorkbookEachRow(t *testing.T) {
	wb := buildTestWorkbook(t)

	var rows []Row
	err := wb.EachRow("FY25 HR INFO", func(rownum int, row Row) error {
		rows = append(rows, row)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 2, "header row excluded")

	require.Equal(t, KindText, rows[0].At(0).Kind())
	require.Equal(t, "A00001", rows[0].At(0).Text())
	require.Equal(t, KindNumber, rows[0].At(1).Kind())
	require.Equal(t, float64(0), rows[0].At(1).Number())
	require.Equal(t, "SMITH,JOHN", rows[0].At(2).Text())

	// Short rows surface missing trailing cells as null.
	require.True(t, rows[1].At(1).IsNull())
	require.True(t, rows[1].At(2).IsNull())
}

func TestWorkbookNumbersStayRaw(t *testing.T) {
	wb := buildTestWorkbook(t)

	var wage Cell
	err := wb.EachRow("FY25 EARNINGS", func(rownum int, row Row) error {
		wage = row.At(1)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, KindNumber, wage.Kind())
	require.Equal(t, 50000.25, wage.Number())
}

func TestTagRawValue(t *testing.T) {
	require.True(t, tagRawValue("").IsNull())
	require.Equal(t, KindNumber, tagRawValue("44012").Kind())
	require.Equal(t, KindNumber, tagRawValue("-1.5").Kind())
	require.Equal(t, KindText, tagRawValue("A00001").Kind())
	require.Equal(t, KindText, tagRawValue("12-31").Kind())

	// Numeric-looking text must stay text: parsing and reformatting does not
	// reproduce these strings.
	require.Equal(t, KindText, tagRawValue("00123").Kind())
	require.Equal(t, "00123", tagRawValue("00123").Text())
	require.Equal(t, KindText, tagRawValue("1.50").Kind())
}

func TestWorkbookPreservesLeadingZeroIdentifiers(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "FY25 HR INFO"))
	require.NoError(t, f.SetSheetRow("FY25 HR INFO", "A1", &[]any{"TEMPORARY_ID", "AGENCY_NBR"}))
	require.NoError(t, f.SetCellStr("FY25 HR INFO", "A2", "00123"))
	require.NoError(t, f.SetCellStr("FY25 HR INFO", "B2", "0070"))
	wb := NewWorkbook(f)
	t.Cleanup(func() { _ = wb.Close() })

	var row Row
	err := wb.EachRow("FY25 HR INFO", func(rownum int, r Row) error {
		row = r
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, KindText, row.At(0).Kind())
	require.Equal(t, "00123", row.At(0).Text())
	require.Equal(t, "0070", row.At(1).Text())
}
