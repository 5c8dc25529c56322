package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/iota-uz/checkbook-etl/migrations"
	"github.com/iota-uz/checkbook-etl/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply the checkbook schema migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conf := configuration.Use()

			action := "up"
			if len(args) == 1 {
				action = args[0]
			}

			db, err := sql.Open("postgres", conf.Database.Opts)
			if err != nil {
				return withCode(exitDB, fmt.Errorf("connect database: %w", err))
			}
			defer func() { _ = db.Close() }()

			goose.SetBaseFS(migrations.FS)
			if err := goose.SetDialect("postgres"); err != nil {
				return withCode(exitDB, err)
			}

			switch action {
			case "up":
				err = goose.UpContext(ctx, db, ".")
			case "down":
				err = goose.DownContext(ctx, db, ".")
			case "status":
				err = goose.StatusContext(ctx, db, ".")
			}
			if err != nil {
				return withCode(exitDB, fmt.Errorf("migrate %s: %w", action, err))
			}
			return nil
		},
	}
	return cmd
}
