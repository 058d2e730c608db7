package main

import (
	repo "github.com/Temutjin2k/agro-insurance/internal/adapter/postgres"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := wrap.WithAction(cmd.Context(), "migrate")

		cfg, log, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog()

		db, err := postgres.New(ctx, cfg.Database)
		if err != nil {
			log.Error(ctx, "failed to setup database", err)
			return err
		}
		defer db.Close()

		applied, err := repo.Migrate(ctx, db.Pool)
		if err != nil {
			log.Error(ctx, "migration failed", err)
			return err
		}

		if len(applied) == 0 {
			log.Info(ctx, "schema is up to date")
			return nil
		}
		log.Info(ctx, "migrations applied", "files", applied)
		return nil
	},
}
