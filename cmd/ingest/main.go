package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"nba-projection-lab/internal/config"
	"nba-projection-lab/internal/ingestion"
	"nba-projection-lab/internal/logging"
	"nba-projection-lab/internal/observability"
	"nba-projection-lab/internal/storage"
	"nba-projection-lab/internal/storage/memory"
	"nba-projection-lab/internal/storage/migrations"
	pgstore "nba-projection-lab/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error loading config: %v", err)
	}

	flag.StringVar(&cfg.GameLogsPath, "gamelogs", cfg.GameLogsPath, "Game logs JSON file to ingest")
	flag.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	flag.BoolVar(&cfg.UseMemory, "use-memory", cfg.UseMemory, "Validate into in-memory storage instead of PostgreSQL")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus metrics HTTP address (empty to disable)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	batchSize := flag.Int("batch-size", ingestion.DefaultBatchSize, "Rows per insert batch")
	flag.Parse()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		config.Exitf("Error creating logger: %v", err)
	}

	if cfg.GameLogsPath == "" {
		config.Exitf("Error: --gamelogs is required")
	}
	// Require --postgres-dsn unless --use-memory is explicitly set
	if !cfg.UseMemory && cfg.PostgresDSN == "" {
		config.Exitf("Error: --postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			logger.WithField("addr", cfg.MetricsAddr).Info("starting metrics server")
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			logger.WithField("signal", sig.String()).Warn("initiating graceful shutdown")
			cancel()
		case <-done:
			return
		}

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.WithField("signal", sig.String()).Error("forcing immediate shutdown")
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Error("graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	err = ingest(ctx, cfg, *batchSize, logger)
	close(done)
	cancel()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Fatal("ingest failed")
	}
	logger.Info("shutdown complete")
}

func ingest(ctx context.Context, cfg config.Config, batchSize int, logger logrus.FieldLogger) error {
	var store storage.GameLogStore = memory.NewGameLogStore()
	if !cfg.UseMemory {
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("postgres migrations: %w", err)
		}
		store = pgstore.NewGameLogStore(pool)
	}

	mgr := ingestion.NewManager(ingestion.ManagerOptions{
		Source:    ingestion.NewJSONFileSource(cfg.GameLogsPath),
		Store:     store,
		BatchSize: batchSize,
		Logger:    logger,
	})
	res, err := mgr.Ingest(ctx)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"fetched":  res.Fetched,
		"inserted": res.Inserted,
		"batches":  res.Batches,
	}).Info("ingest complete")
	return nil
}
