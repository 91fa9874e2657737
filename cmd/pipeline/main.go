// Package main provides the batch projection entry point.
// Executes: game logs → projection → auction → game-day → export
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

	"github.com/sirupsen/logrus"

	"nba-projection-lab/internal/config"
	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/fixtures"
	"nba-projection-lab/internal/ingestion"
	"nba-projection-lab/internal/logging"
	"nba-projection-lab/internal/lookup"
	"nba-projection-lab/internal/observability"
	"nba-projection-lab/internal/orchestrator"
	"nba-projection-lab/internal/pipeline"
	"nba-projection-lab/internal/storage"
	chstore "nba-projection-lab/internal/storage/clickhouse"
	"nba-projection-lab/internal/storage/memory"
	"nba-projection-lab/internal/storage/migrations"
	pgstore "nba-projection-lab/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error loading config: %v", err)
	}

	// Flags default to the environment
	flag.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string for game logs")
	flag.StringVar(&cfg.ClickhouseDSN, "clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string for run outputs (empty keeps them in memory)")
	flag.BoolVar(&cfg.UseMemory, "use-memory", cfg.UseMemory, "Use synthetic fixture game logs instead of a database")
	flag.StringVar(&cfg.TablesPath, "tables", cfg.TablesPath, "Static lookup tables JSON (empty uses synthetic tables)")
	flag.StringVar(&cfg.GameLogsPath, "gamelogs", cfg.GameLogsPath, "Game logs JSON file loaded into memory")
	flag.StringVar(&cfg.GameContextsPath, "game-contexts", cfg.GameContextsPath, "Upcoming game contexts JSON keyed by player id")
	flag.IntVar(&cfg.CurrentSeason, "season", cfg.CurrentSeason, "Season to project (0 uses the latest stored season)")
	flag.StringVar(&cfg.AgeEra, "era", cfg.AgeEra, "Age curve era")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent projection workers")
	flag.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Output directory for generated files")
	flag.BoolVar(&cfg.WriteReport, "report", cfg.WriteReport, "Write REPORT.md")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus metrics HTTP address (empty to disable)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		config.Exitf("Error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		config.Exitf("Error creating logger: %v", err)
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(logger, cfg.MetricsAddr)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.WithField("signal", sig.String()).Warn("cancelling pipeline")
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("pipeline cancelled")
			os.Exit(130)
		}
		logger.WithError(err).Error("pipeline failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	tables, err := loadTables(cfg.TablesPath, logger)
	if err != nil {
		return err
	}

	gameLogs, closeLogs, err := openGameLogs(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLogs()

	contexts, err := loadGameContexts(cfg, logger)
	if err != nil {
		return err
	}

	projStore, valueStore, closeSinks, err := openSinks(ctx, cfg.ClickhouseDSN)
	if err != nil {
		return err
	}
	defer closeSinks()

	orch := orchestrator.New(orchestrator.Options{
		GameLogStore:      gameLogs,
		Tables:            tables,
		ProjectionStore:   projStore,
		AuctionValueStore: valueStore,
		Era:               cfg.AgeEra,
		CurrentSeason:     cfg.CurrentSeason,
		Workers:           cfg.Workers,
		Auction:           cfg.Auction(),
		GameContexts:      contexts,
		Logger:            logger,
	})

	result, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	exported, err := pipeline.NewExporter(cfg.OutputDir).
		WithReport(cfg.WriteReport).
		WithLogger(logger).
		Export(ctx, result)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (season %d)\n", result.RunID, result.CurrentSeason)
	fmt.Printf("  Players loaded: %d\n", result.PlayersLoaded)
	fmt.Printf("  Projected:      %d\n", len(result.Projections))
	fmt.Printf("  Skipped:        %d\n", len(result.Skipped))
	fmt.Printf("  Auction pool:   %d\n", result.Auction.PoolSize)
	fmt.Printf("  Game-day:       %d\n", len(result.GameDay))
	for _, f := range exported.Files {
		fmt.Printf("  - %s\n", f)
	}
	fmt.Printf("Run code: %s\n", exported.RunCode)
	return nil
}

func serveMetrics(logger logrus.FieldLogger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	logger.WithField("addr", addr).Info("starting metrics server")
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("metrics server stopped")
	}
}

func loadTables(path string, logger logrus.FieldLogger) (*lookup.StaticDataStore, error) {
	if path == "" {
		logger.WithField("version", fixtures.TablesVersion).Warn("TABLES_PATH not set, using synthetic lookup tables")
		return lookup.New(fixtures.Tables())
	}
	tables, err := lookup.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	return tables, nil
}

// openGameLogs picks the game log backend: postgres, then a JSON file, then fixtures.
func openGameLogs(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (storage.GameLogStore, func(), error) {
	if cfg.PostgresDSN != "" && !cfg.UseMemory {
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		logger.Info("reading game logs from postgres")
		return pgstore.NewGameLogStore(pool), pool.Close, nil
	}

	store := memory.NewGameLogStore()
	if cfg.GameLogsPath != "" {
		mgr := ingestion.NewManager(ingestion.ManagerOptions{
			Source: ingestion.NewJSONFileSource(cfg.GameLogsPath),
			Store:  store,
			Logger: logger,
		})
		if _, err := mgr.Ingest(ctx); err != nil {
			return nil, nil, fmt.Errorf("ingest %s: %w", cfg.GameLogsPath, err)
		}
		return store, func() {}, nil
	}

	opts := fixtures.DefaultOptions()
	n, err := fixtures.Load(ctx, store, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("load fixtures: %w", err)
	}
	logger.WithFields(logrus.Fields{"players": opts.Players, "game_logs": n}).Info("loaded synthetic game logs")
	return store, func() {}, nil
}

// loadGameContexts reads GAME_CONTEXTS_PATH; fixture runs get synthetic contexts.
func loadGameContexts(cfg config.Config, logger logrus.FieldLogger) (map[string]domain.GameContext, error) {
	if cfg.GameContextsPath != "" {
		contexts, err := ingestion.LoadGameContextsFile(cfg.GameContextsPath)
		if err != nil {
			return nil, err
		}
		logger.WithField("contexts", len(contexts)).Info("loaded game contexts")
		return contexts, nil
	}
	if cfg.UseMemory && cfg.GameLogsPath == "" {
		return fixtures.GameContexts(fixtures.DefaultOptions()), nil
	}
	return nil, nil
}

func openSinks(ctx context.Context, dsn string) (storage.ProjectionStore, storage.AuctionValueStore, func(), error) {
	if dsn == "" {
		return memory.NewProjectionStore(), memory.NewAuctionValueStore(), func() {}, nil
	}
	conn, err := migrations.RunClickhouseMigrations(ctx, dsn)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("clickhouse: %w", err)
	}
	closeConn := func() { _ = conn.Close() }
	return chstore.NewProjectionStore(conn), chstore.NewAuctionValueStore(conn), closeConn, nil
}
