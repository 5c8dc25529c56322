package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSVTable(t *testing.T) {
	in := "\ufeffBudget Period,Agency,Spend Amount\n2025,Revenue,\"1,234.50\"\n2026,, \n"
	table, err := ReadCSVTable("budgets", strings.NewReader(in))
	require.NoError(t, err)

	require.Equal(t, []string{"budgets"}, table.Sheets())

	header, err := table.Header("budgets")
	require.NoError(t, err)
	require.Equal(t, []string{"Budget Period", "Agency", "Spend Amount"}, header, "BOM stripped from first header")

	var rows []Row
	var nums []int
	err = table.EachRow("budgets", func(rownum int, row Row) error {
		nums = append(nums, rownum)
		rows = append(rows, row)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, nums)
	require.Len(t, rows, 2)

	require.Equal(t, KindText, rows[0].At(0).Kind())
	require.Equal(t, "1,234.50", rows[0].At(2).Text())
	require.True(t, rows[1].At(1).IsNull(), "empty cell reads as null")
	require.True(t, rows[1].At(2).IsNull(), "whitespace-only cell reads as null")
}

func TestReadCSVTableEmpty(t *testing.T) {
	_, err := ReadCSVTable("x", strings.NewReader(""))
	require.Error(t, err)
}

func TestCSVTableUnknownSheet(t *testing.T) {
	table, err := ReadCSVTable("budgets", strings.NewReader("a\n1\n"))
	require.NoError(t, err)

	_, err = table.Header("other")
	require.ErrorIs(t, err, ErrSheetNotFound)
	err = table.EachRow("other", func(int, Row) error { return nil })
	require.ErrorIs(t, err, ErrSheetNotFound)
}

func TestRowAtOutOfRange(t *testing.T) {
	row := Row{TextCell("x")}
	require.True(t, row.At(5).IsNull())
	require.True(t, row.At(-1).IsNull())
}
