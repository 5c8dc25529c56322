package main

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/checkbook-etl/internal/payroll"
	"github.com/iota-uz/checkbook-etl/pkg/configuration"
	"github.com/iota-uz/checkbook-etl/pkg/load"
)

type payrollOptions struct {
	years    []int
	conflict string
	dup      string
	dataDir  string
}

func newPayrollCmd() *cobra.Command {
	var opts payrollOptions

	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Import payroll workbooks (one .xlsx per fiscal year) into checkbook.payroll",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conf := configuration.Use()
			logger := conf.Logger()

			conflict, err := parseConflictPolicy(opts.conflict)
			if err != nil {
				return withCode(exitUsage, err)
			}
			dup, err := parseDuplicatePolicy(opts.dup)
			if err != nil {
				return withCode(exitUsage, err)
			}
			dataDir := opts.dataDir
			if dataDir == "" {
				dataDir = conf.DataDir
			}
			if _, err := os.Stat(dataDir); err != nil {
				return withCode(exitInput, fmt.Errorf("data directory %s: %w", dataDir, err))
			}

			pool, err := pgxpool.New(ctx, conf.Database.Opts)
			if err != nil {
				return withCode(exitDB, fmt.Errorf("connect database: %w", err))
			}
			defer pool.Close()

			store := load.NewPgStore(pool).
				TouchOnReplace(payroll.TableName(conf.Database.Schema), "updated_at")
			summaries := payroll.Run(ctx, payroll.Options{
				DataDir:         dataDir,
				Years:           opts.years,
				Schema:          conf.Database.Schema,
				BatchSize:       conf.BatchSize,
				ConflictPolicy:  conflict,
				DuplicatePolicy: dup,
				Store:           store,
				Logger:          logger,
			})

			var succeeded, failed, skippedRows, failedYears int
			fmt.Println("Payroll import summary:")
			for _, s := range summaries {
				switch {
				case s.Skipped:
					fmt.Printf("  FY%d: workbook not found, skipped\n", s.Year)
				case s.Err != nil:
					fmt.Printf("  FY%d: FAILED: %v\n", s.Year, s.Err)
					failedYears++
				default:
					fmt.Printf("  FY%d: %d loaded, %d failed, %d rows skipped (committed: %d)\n",
						s.Year, s.Load.Succeeded, s.Load.Failed, s.Stats.SkippedRows, s.Load.Committed)
				}
				succeeded += s.Load.Succeeded
				failed += s.Load.Failed
				skippedRows += s.Stats.SkippedRows
			}
			fmt.Printf("Total: %d loaded, %d failed, %d rows skipped\n", succeeded, failed, skippedRows)
			return importError(failedYears, failed)
		},
	}

	cmd.Flags().IntSliceVar(&opts.years, "years", []int{2020, 2021, 2022, 2023, 2024, 2025}, "Fiscal years to import")
	cmd.Flags().StringVar(&opts.conflict, "on-conflict", "skip", "Conflict policy: skip or replace")
	cmd.Flags().StringVar(&opts.dup, "dup-policy", "first-wins", "Duplicate earnings identifier policy: first-wins or last-wins")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Data directory (default: DATA_DIR from env)")
	return cmd
}
