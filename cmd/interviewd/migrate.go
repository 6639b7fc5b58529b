package main

import (
	"github.com/spf13/cobra"

	"github.com/interviewme/backend/internal/infrastructure/config"
	"github.com/interviewme/backend/internal/infrastructure/db/mongo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply MongoDB index migrations",
	RunE:  runMigrate,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all index migrations",
	RunE:  runMigrateDown,
}

func init() {
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	if err := mongo.MigrateUp(cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("migrations applied successfully")
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	if err := mongo.MigrateDown(cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("migrations rolled back successfully")
	return nil
}
