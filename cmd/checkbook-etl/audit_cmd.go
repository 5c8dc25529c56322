package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/iota-uz/checkbook-etl/internal/payroll"
	"github.com/iota-uz/checkbook-etl/pkg/configuration"
	"github.com/iota-uz/checkbook-etl/pkg/sheet"
)

type auditOptions struct {
	year    int
	dup     string
	dataDir string
	maxDups int
}

func newAuditCmd() *cobra.Command {
	var opts auditOptions

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect a payroll workbook without writing to the database",
		Long: "Reads one fiscal year's workbook, runs the normal extract and join, " +
			"and reports null rates, agency cardinality and natural-key uniqueness. " +
			"No database connection is made.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()

			dup, err := parseDuplicatePolicy(opts.dup)
			if err != nil {
				return withCode(exitUsage, err)
			}
			dataDir := opts.dataDir
			if dataDir == "" {
				dataDir = conf.DataDir
			}

			path := payroll.WorkbookPath(dataDir, opts.year)
			wb, err := sheet.OpenWorkbook(path)
			if err != nil {
				return withCode(exitInput, err)
			}
			defer func() { _ = wb.Close() }()

			report, stats, err := payroll.AuditYear(wb, fmt.Sprintf("%d", opts.year), dup)
			if err != nil {
				return withCode(exitInput, err)
			}

			fmt.Printf("Workbook: %s\n", path)
			fmt.Printf("Sheets: %v\n", wb.Sheets())
			if stats.ActiveColumn != "" {
				fmt.Printf("Active column: %s\n", stats.ActiveColumn)
			}
			fmt.Printf("HR rows: %d, earnings rows: %d, combined: %d, skipped: %d\n",
				stats.RosterRows, stats.DetailRows, stats.Combined, stats.SkippedRows)

			fmt.Println("Null counts (required fields):")
			fields := make([]string, 0, len(report.NullCounts))
			for f := range report.NullCounts {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				fmt.Printf("  %s: %d\n", f, report.NullCounts[f])
			}

			fmt.Printf("Distinct %s: %d\n", report.GroupField, report.GroupCardinality)
			fmt.Printf("Key %v unique: %t\n", report.KeyFields, report.KeyUnique)
			for i, dup := range report.DuplicateKeys {
				if i >= opts.maxDups {
					fmt.Printf("  ... %d more duplicated tuples\n", len(report.DuplicateKeys)-opts.maxDups)
					break
				}
				fmt.Printf("  duplicate %s x%d\n", dup.Tuple, dup.Count)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", 0, "Fiscal year to audit (required)")
	cmd.Flags().StringVar(&opts.dup, "dup-policy", "first-wins", "Duplicate earnings identifier policy: first-wins or last-wins")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Data directory (default: DATA_DIR from env)")
	cmd.Flags().IntVar(&opts.maxDups, "max-duplicates", 20, "Maximum duplicated tuples to print")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
