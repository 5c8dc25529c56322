package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "checkbook-etl",
		Short:         "Ingest state payroll and budget exports into the checkbook database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newPayrollCmd())
	cmd.AddCommand(newBudgetsCmd())
	cmd.AddCommand(newAuditCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCodeOf(err))
	}
}
