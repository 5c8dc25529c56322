package etl

import (
	"fmt"
	"sort"
	"strings"
)

// AuditSpec selects what the quality audit measures.
type AuditSpec struct {
	// Required fields are counted for null/blank occurrences.
	Required []string
	// GroupField, when set, has its distinct-value cardinality reported
	// (e.g. agency name).
	GroupField string
	// KeyFields form the tuple checked for uniqueness across the set.
	KeyFields []string
}

// DuplicateKey is one key tuple that occurs more than once.
type DuplicateKey struct {
	Tuple string
	Count int
}

// AuditReport is a read-only snapshot of a record set's quality. It is
// computed before (or instead of) a load run and never affects the load
// path.
type AuditReport struct {
	Records          int
	NullCounts       map[string]int
	GroupField       string
	GroupCardinality int
	KeyFields        []string
	KeyUnique        bool
	DuplicateKeys    []DuplicateKey
}

// Audit computes null rates, grouping cardinality and key-tuple uniqueness
// over a record set.
func Audit(records []Record, spec AuditSpec) AuditReport {
	report := AuditReport{
		Records:    len(records),
		NullCounts: make(map[string]int, len(spec.Required)),
		GroupField: spec.GroupField,
		KeyFields:  spec.KeyFields,
		KeyUnique:  true,
	}
	for _, f := range spec.Required {
		report.NullCounts[f] = 0
	}

	groups := make(map[string]struct{})
	keyCounts := make(map[string]int)

	for _, rec := range records {
		for _, f := range spec.Required {
			if isBlankValue(rec[f]) {
				report.NullCounts[f]++
			}
		}
		if spec.GroupField != "" {
			if v := rec[spec.GroupField]; !isBlankValue(v) {
				groups[fmt.Sprint(v)] = struct{}{}
			}
		}
		if len(spec.KeyFields) > 0 {
			keyCounts[keyTuple(rec, spec.KeyFields)]++
		}
	}

	report.GroupCardinality = len(groups)
	for tuple, n := range keyCounts {
		if n > 1 {
			report.KeyUnique = false
			report.DuplicateKeys = append(report.DuplicateKeys, DuplicateKey{Tuple: tuple, Count: n})
		}
	}
	sort.Slice(report.DuplicateKeys, func(i, j int) bool {
		return report.DuplicateKeys[i].Tuple < report.DuplicateKeys[j].Tuple
	})
	return report
}

func keyTuple(rec Record, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		v := rec[f]
		if v == nil {
			parts[i] = "<null>"
		} else {
			parts[i] = fmt.Sprint(v)
		}
	}
	return strings.Join(parts, "|")
}

func isBlankValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
