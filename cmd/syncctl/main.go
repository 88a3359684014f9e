package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/config"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/ledger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/repair"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/syncer"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")

	dryRun      = flag.Bool("dry-run", false, "Report what would change without writing")
	window48h   = flag.Bool("48h", false, "Sync the last 48 hours (default)")
	window7d    = flag.Bool("7d", false, "Sync the last 7 days")
	full        = flag.Bool("full", false, "Sync the full ledger history")
	analyze     = flag.Bool("analyze", false, "Report ledger/projection drift without syncing")
	repairVotes = flag.Bool("repair", false, "Repair corrupted vote records")
	powerLevels = flag.Bool("power-levels", false, "Also reconcile power levels")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSyncctlConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "syncctl",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
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

	// Operator runs have no broker and no debounced ranking: writes are applied
	// directly and the daemon's next cycle covers the rank rebuild
	coordinator := syncer.New(syncer.Config{
		BatchSize:         cfg.Sync.BatchSize,
		WorkerPoolSize:    cfg.Sync.WorkerPoolSize,
		SeasonTwoStartDay: cfg.Sync.SeasonTwoStartDay,
	}, ledgerReader, dataStore, nil, nil, clock)

	switch {
	case *analyze:
		runAnalyze(ctx, coordinator)
	case *repairVotes:
		runRepair(ctx, cfg, ledgerReader, dataStore, clock)
	default:
		runSync(ctx, coordinator)
	}
}

// runSync executes one reconciliation pass with the selected window
func runSync(ctx context.Context, coordinator *syncer.Coordinator) {
	windowHours := 48
	switch {
	case *full:
		windowHours = 0
	case *window7d:
		windowHours = 7 * 24
	case *window48h:
		windowHours = 48
	}

	stats := coordinator.Sync(ctx, syncer.Options{
		WindowHours:     windowHours,
		SyncVotes:       true,
		SyncPowerLevels: *powerLevels,
		DryRun:          *dryRun,
	})

	fmt.Printf("run %s: checked %d votes, inserted %d, checked %d power levels, updated %d, created %d users\n",
		stats.RunID, stats.CheckedVotes, stats.InsertedVotes,
		stats.CheckedPowers, stats.UpdatedPowers, stats.CreatedUsers)
	if *dryRun {
		fmt.Println("dry run: no changes were written")
	}
	for _, e := range stats.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	if stats.Fatal {
		os.Exit(1)
	}
}

// runAnalyze prints a drift report without writing anything
func runAnalyze(ctx context.Context, coordinator *syncer.Coordinator) {
	report, err := coordinator.Analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("report %s: %d ledger votes, %d projected, %d missing, %d orphaned, %d corrupted\n",
		report.ReportID, report.LedgerVotes, report.ProjectedVotes,
		len(report.MissingTxHashes), report.OrphanedCount, report.CorruptedVotes)
	for _, tx := range report.MissingTxHashes {
		fmt.Printf("missing: %s\n", tx)
	}
}

// runRepair backfills corrupted vote records from transaction receipts
func runRepair(ctx context.Context, cfg *config.SyncctlConfig, ledgerReader ledger.Reader, dataStore store.Store, clock adapter.Clock) {
	service := repair.NewService(repair.Config{
		RequestDelay: cfg.Repair.RequestDelay,
	}, ledgerReader, dataStore, nil, clock)

	result, err := service.RepairAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "repair failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("checked %d corrupted votes, repaired %d\n", result.Checked, result.Repaired)
	for _, tx := range result.Unrepairable {
		fmt.Printf("unrepairable: %s\n", tx)
	}
}
