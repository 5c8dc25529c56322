package sheet

import (
	"strings"

	gerrors "github.com/go-faster/errors"
)

var (
	ErrSheetNotFound  = gerrors.New("sheet not found")
	ErrColumnNotFound = gerrors.New("column not found")
)

// FindSheet returns the first sheet name containing pattern,
// case-insensitively. Sheet names drift across fiscal years ("FY25 HR INFO"
// vs "HR INFO 2020"), so lookup is by substring rather than exact name.
func FindSheet(names []string, pattern string) (string, error) {
	p := strings.ToLower(pattern)
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), p) {
			return name, nil
		}
	}
	return "", gerrors.Wrapf(ErrSheetNotFound, "pattern %q", pattern)
}

// FindColumn returns the first header containing pattern,
// case-insensitively, together with its index. Used for year-qualified
// columns such as ACTIVE_ON_JUNE_30_2025 where the suffix changes per file.
func FindColumn(headers []string, pattern string) (string, int, error) {
	p := strings.ToLower(pattern)
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), p) {
			return h, i, nil
		}
	}
	return "", -1, gerrors.Wrapf(ErrColumnNotFound, "pattern %q", pattern)
}

// ColumnIndex returns the index of the header equal to name after trimming
// and case folding, or -1.
func ColumnIndex(headers []string, name string) int {
	want := strings.ToUpper(strings.TrimSpace(name))
	for i, h := range headers {
		if strings.ToUpper(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}
