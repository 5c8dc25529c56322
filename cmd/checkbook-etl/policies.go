package main

import (
	"fmt"

	"github.com/iota-uz/checkbook-etl/pkg/etl"
	"github.com/iota-uz/checkbook-etl/pkg/load"
)

func parseConflictPolicy(s string) (load.ConflictPolicy, error) {
	switch s {
	case "skip":
		return load.Skip, nil
	case "replace":
		return load.Replace, nil
	default:
		return 0, fmt.Errorf("invalid --on-conflict %q (want skip or replace)", s)
	}
}

// importError turns partial import failures into a non-zero exit so
// operators can script on the result. A fully skipped or clean run returns
// nil.
func importError(failedYears, failedRows int) error {
	if failedYears == 0 && failedRows == 0 {
		return nil
	}
	return withCode(exitInput, fmt.Errorf("import incomplete: %d dataset(s) failed, %d rows failed", failedYears, failedRows))
}

func parseDuplicatePolicy(s string) (etl.DuplicatePolicy, error) {
	switch s {
	case "first-wins":
		return etl.FirstWins, nil
	case "last-wins":
		return etl.LastWins, nil
	default:
		return 0, fmt.Errorf("invalid --dup-policy %q (want first-wins or last-wins)", s)
	}
}
