package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"gitlab.com/leetle.net/internal/adapter/crypto"
	"gitlab.com/leetle.net/internal/adapter/logging"
	"gitlab.com/leetle.net/internal/adapter/metrics"
	"gitlab.com/leetle.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/leetle.net/internal/adapter/postgres/statsrepository"
	"gitlab.com/leetle.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/leetle.net/internal/adapter/redis/problemcache"
	"gitlab.com/leetle.net/internal/config"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/core/services/problem"
	"gitlab.com/leetle.net/internal/core/services/runner"
	"gitlab.com/leetle.net/internal/core/services/stats"
	"gitlab.com/leetle.net/internal/core/services/submission"
	"gitlab.com/leetle.net/internal/core/services/verifier"
	http2 "gitlab.com/leetle.net/internal/http"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API",
		Flags:  []cli.Flag{envFlag},
		Action: serve,
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	if err := loadEnv(cmd); err != nil {
		return err
	}
	sysCfg := config.NewSystemConfig()

	logger := logging.NewZapLogger(sysCfg.LogLevel)
	defer logger.Sync()
	logger.Info("Starting leetle", "port", sysCfg.HttpConfig.Port, "debug", sysCfg.DebugMode)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupDatabase(ctx, sysCfg.PostgresConfig)
	if err != nil {
		logger.Error("Failed to set up database", "error", err)
		return err
	}
	defer db.Close()

	redisClient := setupRedis(sysCfg.RedisConfig)
	defer redisClient.Close()
	var cache secondary.ProblemCache
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, serving without problem cache", "addr", sysCfg.RedisConfig.Url, "error", err)
	} else {
		cache = problemcache.NewProblemCache(redisClient, logger.Named("cache"))
	}

	observer := metrics.NewObserver()

	// SECONDARY PORTS
	schema := sysCfg.PostgresConfig.Schema
	problemRepo := problemrepository.NewProblemRepository(db, logger.Named("postgres"), schema)
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger.Named("postgres"), schema)
	statsRepo := statsrepository.NewStatsRepository(db, logger.Named("postgres"), schema)

	codeRunner, err := runner.New(sysCfg.RunnerConfig, logger.Named("runner"), runner.WithObserver(observer))
	if err != nil {
		return fmt.Errorf("failed to build runner: %w", err)
	}

	// PRIMARY PORTS
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// services
	problemSvc := problem.NewProblemService(problemRepo, cache, logger.Named("problem"))
	statsSvc := stats.NewStatsService(statsRepo, submissionRepo, logger.Named("stats"))
	verifierSvc := verifier.NewVerifier(codeRunner, sysCfg.RunnerConfig.TimeoutBudget, logger.Named("verifier"), observer)
	submissionSvc := submission.NewSubmissionService(
		problemSvc,
		verifierSvc,
		submissionRepo,
		statsSvc,
		sysCfg.RunnerConfig.MaxConcurrent,
		logger.Named("submission"),
	)
	serviceProvider := http2.NewServiceProvider(problemSvc, submissionSvc, jwtProvider, observer.Handler())

	// server
	httpServer := http2.NewServer(sysCfg.HttpConfig.Port, sysCfg.HttpConfig.ServiceName, *serviceProvider, logger.Named("http"))
	if err := httpServer.Init(); err != nil {
		return err
	}
	// in-flight submissions finish during shutdown
	errCh := httpServer.Start(context.WithoutCancel(ctx))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), sysCfg.HttpConfig.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Info("successfully shutdown server")
	return nil
}
