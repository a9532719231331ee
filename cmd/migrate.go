package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"gitlab.com/leetle.net/internal/adapter/logging"
	"gitlab.com/leetle.net/internal/adapter/postgres/schema"
	"gitlab.com/leetle.net/internal/config"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create the database tables if they do not exist",
		Flags:  []cli.Flag{envFlag},
		Action: migrate,
	}
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	if err := loadEnv(cmd); err != nil {
		return err
	}
	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(sysCfg.LogLevel)
	defer logger.Sync()

	db, err := setupDatabase(ctx, sysCfg.PostgresConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := schema.Apply(ctx, db, sysCfg.PostgresConfig.Schema); err != nil {
		logger.Error("Migration failed", "error", err)
		return err
	}
	logger.Info("Schema up to date", "schema", sysCfg.PostgresConfig.Schema)
	return nil
}
