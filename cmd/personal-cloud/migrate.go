package main

import (
	"log/slog"

	"github.com/KennethL27/personal-cloud-service/internal/config"
	"github.com/KennethL27/personal-cloud-service/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithOptions(config.LoadOptions{})
		if err != nil {
			return err
		}

		applied, err := db.Migrate(cfg.DBPath)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			slog.Info("no changes to apply", "db", cfg.DBPath)
			return nil
		}

		slog.Info("migrations applied successfully", "db", cfg.DBPath, "applied", applied)
		return nil
	},
}
