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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/config"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/ledger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/providers/jetstream"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/ranking"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/schedule"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/streak"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/syncer"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSyncdConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "syncd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting sync daemon")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize clock adapter
	clock := adapter.NewClock()

	// Connect to the event ledger
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ledger.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to ledger RPC", zap.Error(err), zap.String("rpc_url", cfg.Ledger.RPCURL))
	}
	ledgerReader := ledger.NewReader(ledger.Config{
		ContractAddress: cfg.Ledger.ContractAddress,
		StartBlock:      cfg.Ledger.StartBlock,
		SecondsPerBlock: cfg.Ledger.SecondsPerBlock,
		ChunkSize:       cfg.Ledger.ChunkSize,
	}, ethClient, clock)
	defer ledgerReader.Close()
	logger.InfoCtx(ctx, "Connected to ledger RPC",
		zap.String("contract", cfg.Ledger.ContractAddress),
		zap.Uint64("start_block", cfg.Ledger.StartBlock),
	)

	// Connect to NATS JetStream for projection events
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))

	// Initialize the aggregators
	ranks := ranking.NewAggregator(ranking.Config{
		QuietPeriod: cfg.Ranking.QuietPeriod,
	}, dataStore)
	defer ranks.Close()

	streaks := streak.NewAggregator(dataStore, clock)

	// Initialize the sync coordinator
	coordinator := syncer.New(syncer.Config{
		BatchSize:         cfg.Sync.BatchSize,
		WorkerPoolSize:    cfg.Sync.WorkerPoolSize,
		SeasonTwoStartDay: cfg.Sync.SeasonTwoStartDay,
	}, ledgerReader, dataStore, ranks, publisher, clock)

	// Initialize the maintenance runner
	runner := schedule.NewRunner(schedule.RunnerConfig{
		Planner: schedule.PlannerConfig{
			RecentInterval: cfg.Schedule.RecentInterval,
			DeepInterval:   cfg.Schedule.DeepInterval,
			StreakInterval: cfg.Schedule.StreakInterval,
		},
		TickInterval:      cfg.Schedule.TickInterval,
		RecentWindowHours: cfg.Schedule.RecentWindowHours,
		DeepWindowHours:   cfg.Schedule.DeepWindowHours,
	}, coordinator, streaks, ranks, clock)

	// Start the runner in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := runner.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Start the ops HTTP server
	opsServer := newOpsServer(cfg.Server, db, runner, clock)
	go func() {
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	logger.InfoCtx(ctx, "Ops server listening",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the runner
	cancel()

	// Give everything time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}
	if err := runner.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sync daemon stopped")
}
