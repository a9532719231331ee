package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"

	"gitlab.com/leetle.net/internal/config"
)

var envFlag = &cli.StringFlag{
	Name:  "env",
	Usage: "env file loaded before reading configuration; a missing file is ignored",
	Value: ".env",
}

// loadEnv reads the env file named by --env; variables already set win
func loadEnv(cmd *cli.Command) error {
	path := cmd.String(envFlag.Name)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// setupDatabase opens and pings the PostgreSQL connection
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func setupRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
