package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/db"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/exitcode"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.ValidateMigrate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitcode.New(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return exitcode.New(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return exitcode.New(exitcode.StoreError)
	}

	log.Info().Msg("all migrations applied successfully")
	return nil
}
