// Package normalize converts raw cell values into typed, nullable fields.
//
// Each parser returns (value, error) and never panics. ErrBlank marks the
// values the source uses as "no data" (empty, whitespace-only, or the
// literal dash placeholder); a *ParseError marks a present but unparsable
// value. Callers decide whether either case becomes null or a zero default,
// so the "never fails the row" rule lives in exactly one place per dataset.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/checkbook-etl/pkg/sheet"
)

// ErrBlank reports a blank, whitespace-only or dash-placeholder value.
var ErrBlank = gerrors.New("blank value")

// ParseError reports a non-blank value that does not parse as the target
// type.
type ParseError struct {
	Target string
	Value  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: unparsable value %q", e.Target, e.Value)
}

func parseErr(target string, c sheet.Cell) error {
	return &ParseError{Target: target, Value: c.String()}
}

// excelEpochOffset converts a Unix day count to an Excel date serial
// (day 0 = 1899-12-30).
const excelEpochOffset = 25569

const secondsPerDay = 86400

// blankText reports whether s is one of the source's no-data markers.
func blankText(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "-"
}

// Integer parses a cell as an integer. Numeric cells are truncated;
// numeric-looking text (including a trailing ".0") is parsed then
// truncated.
func Integer(c sheet.Cell) (int64, error) {
	switch c.Kind() {
	case sheet.KindNull:
		return 0, ErrBlank
	case sheet.KindNumber:
		return int64(c.Number()), nil
	case sheet.KindText:
		s := strings.TrimSpace(c.Text())
		if blankText(s) {
			return 0, ErrBlank
		}
		f, err := strconv.ParseFloat(stripThousands(s), 64)
		if err != nil {
			return 0, parseErr("integer", c)
		}
		return int64(f), nil
	default:
		return 0, parseErr("integer", c)
	}
}

// Decimal parses a cell as an exact decimal. Thousands separators are
// stripped from text before parsing.
func Decimal(c sheet.Cell) (decimal.Decimal, error) {
	switch c.Kind() {
	case sheet.KindNull:
		return decimal.Zero, ErrBlank
	case sheet.KindNumber:
		return decimal.NewFromFloat(c.Number()), nil
	case sheet.KindText:
		s := strings.TrimSpace(c.Text())
		if blankText(s) {
			return decimal.Zero, ErrBlank
		}
		d, err := decimal.NewFromString(stripThousands(s))
		if err != nil {
			return decimal.Zero, parseErr("decimal", c)
		}
		return d, nil
	default:
		return decimal.Zero, parseErr("decimal", c)
	}
}

// Wage parses a monetary cell, treating blank, dash and unparsable values
// uniformly as zero. A missing wage record means zero earned, not unknown;
// downstream sums would break on nulls.
func Wage(c sheet.Cell) decimal.Decimal {
	d, err := Decimal(c)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Text parses a cell as trimmed text. Blank, whitespace-only and dash
// values are blank; numeric cells render without a trailing ".0".
func Text(c sheet.Cell) (string, error) {
	switch c.Kind() {
	case sheet.KindNull:
		return "", ErrBlank
	case sheet.KindText:
		s := strings.TrimSpace(c.Text())
		if blankText(s) {
			return "", ErrBlank
		}
		return s, nil
	case sheet.KindNumber:
		if c.Number() == 0 {
			return "", ErrBlank
		}
		return strconv.FormatFloat(c.Number(), 'f', -1, 64), nil
	case sheet.KindDate:
		return c.Date().Format("2006-01-02 15:04:05"), nil
	default:
		return "", parseErr("text", c)
	}
}

// DateSerial parses a cell as an Excel date serial. Already-integral day
// counts pass through truncated; calendar timestamps are converted relative
// to the 1899-12-30 epoch.
func DateSerial(c sheet.Cell) (int64, error) {
	switch c.Kind() {
	case sheet.KindNull:
		return 0, ErrBlank
	case sheet.KindNumber:
		return int64(c.Number()), nil
	case sheet.KindDate:
		return c.Date().Unix()/secondsPerDay + excelEpochOffset, nil
	case sheet.KindText:
		s := strings.TrimSpace(c.Text())
		if blankText(s) {
			return 0, ErrBlank
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, parseErr("date serial", c)
		}
		return int64(f), nil
	default:
		return 0, parseErr("date serial", c)
	}
}

// HireDateText parses the free-form hire-date column. The source mixes
// integer serials with literal date strings, and consumers treat the field
// as opaque text: integral values render as the integer's decimal string,
// any other non-blank text is preserved trimmed.
func HireDateText(c sheet.Cell) (string, error) {
	switch c.Kind() {
	case sheet.KindNull:
		return "", ErrBlank
	case sheet.KindNumber:
		return strconv.FormatInt(int64(c.Number()), 10), nil
	case sheet.KindText:
		s := strings.TrimSpace(c.Text())
		if blankText(s) {
			return "", ErrBlank
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return strconv.FormatInt(int64(f), 10), nil
		}
		return s, nil
	default:
		return "", parseErr("hire date", c)
	}
}

// Epoch returns the timestamp a date serial stands for, in UTC.
// The inverse of DateSerial for whole days.
func Epoch(serial int64) time.Time {
	return time.Unix((serial-excelEpochOffset)*secondsPerDay, 0).UTC()
}

func stripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
