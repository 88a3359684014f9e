package schedule

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/syncer"
)

// Syncer is the slice of the sync coordinator the runner drives
type Syncer interface {
	Sync(ctx context.Context, opts syncer.Options) *domain.SyncStats
}

// StreakSweeper expires stale daily streaks
type StreakSweeper interface {
	ResetExpired(ctx context.Context, now time.Time) (int64, error)
}

// RankMaintainer handles period resets and ranking rebuilds
type RankMaintainer interface {
	RecomputeAll(ctx context.Context, period domain.RankPeriod) (int, error)
	ResetPeriod(ctx context.Context, period domain.RankPeriod) (int64, error)
}

// RunnerConfig holds the runner's settings
type RunnerConfig struct {
	Planner PlannerConfig
	// TickInterval is how often the planner is consulted
	TickInterval time.Duration
	// RecentWindowHours is the sync window of the frequent pass
	RecentWindowHours int
	// DeepWindowHours is the sync window of the infrequent catch-up pass
	DeepWindowHours int
}

// DefaultRunnerConfig returns the production runner settings
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Planner:           DefaultPlannerConfig(),
		TickInterval:      time.Minute,
		RecentWindowHours: 48,
		DeepWindowHours:   7 * 24,
	}
}

// Runner is the long-running maintenance loop of the sync daemon. Each tick it
// asks the planner what is due and executes the actions, swallowing per-run
// errors so one bad cycle never kills the loop.
type Runner struct {
	config    RunnerConfig
	coord     Syncer
	streaks   StreakSweeper
	ranks     RankMaintainer
	clock     adapter.Clock
	state     State
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}

	mu       sync.Mutex
	lastSync *domain.SyncStats
}

// NewRunner creates a maintenance runner
func NewRunner(config RunnerConfig, coord Syncer, streaks StreakSweeper, ranks RankMaintainer, clock adapter.Clock) *Runner {
	if config.TickInterval == 0 {
		config.TickInterval = time.Minute
	}
	return &Runner{
		config:    config,
		coord:     coord,
		streaks:   streaks,
		ranks:     ranks,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the runner's name
func (r *Runner) Name() string {
	return "maintenance-runner"
}

// Start begins the maintenance loop. Blocking; runs until the context is
// canceled or Stop is called. The first cycle is a catch-up sync so a restart
// never waits a full interval to reconcile.
func (r *Runner) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("runner already running")
	}
	defer func() {
		r.running.Store(false)
		close(r.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting maintenance runner",
		zap.Duration("tick_interval", r.config.TickInterval),
		zap.Duration("recent_interval", r.config.Planner.RecentInterval),
		zap.Duration("deep_interval", r.config.Planner.DeepInterval))

	// Startup catch-up: reconcile immediately, then let the planner take over
	r.execute(ctx, Action{Kind: ActionSyncRecent})
	now := r.clock.Now()
	r.state.LastRecentSync = now
	r.state.LastStreakSweep = now

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Maintenance runner stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Maintenance runner stop requested")
			return nil
		case <-r.clock.After(r.config.TickInterval):
			r.tick(ctx)
		}
	}
}

// Stop gracefully stops the runner
func (r *Runner) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping maintenance runner")
	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Maintenance runner stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Maintenance runner stop interrupted by context timeout")
		return ctx.Err()
	}
}

// tick consults the planner once and executes whatever is due
func (r *Runner) tick(ctx context.Context) {
	var actions []Action
	r.state, actions = Plan(r.config.Planner, r.clock.Now(), r.state)

	for _, action := range actions {
		r.execute(ctx, action)
	}
}

// execute runs one action, logging failures instead of propagating them
func (r *Runner) execute(ctx context.Context, action Action) {
	logger.InfoCtx(ctx, "Executing scheduled action",
		zap.String("action", string(action.Kind)),
		zap.String("period", string(action.Period)))

	switch action.Kind {
	case ActionSyncRecent:
		stats := r.coord.Sync(ctx, syncer.Options{
			WindowHours:     r.config.RecentWindowHours,
			SyncVotes:       true,
			SyncPowerLevels: true,
		})
		r.recordSyncOutcome(ctx, stats)

	case ActionSyncDeep:
		stats := r.coord.Sync(ctx, syncer.Options{
			WindowHours:     r.config.DeepWindowHours,
			SyncVotes:       true,
			SyncPowerLevels: true,
		})
		r.recordSyncOutcome(ctx, stats)

	case ActionResetStreaks:
		if _, err := r.streaks.ResetExpired(ctx, r.clock.Now()); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("action", string(action.Kind)))
		}

	case ActionResetPeriod:
		if _, err := r.ranks.ResetPeriod(ctx, action.Period); err != nil {
			logger.ErrorCtx(ctx, err,
				zap.String("action", string(action.Kind)),
				zap.String("period", string(action.Period)))
		}

	case ActionRecomputeRanking:
		if _, err := r.ranks.RecomputeAll(ctx, domain.RankPeriodAllTime); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("action", string(action.Kind)))
		}
	}
}

// Running reports whether the runner's loop is active
func (r *Runner) Running() bool {
	return r.running.Load()
}

// LastSyncStats returns the stats of the most recent sync run, nil before the
// first run completes
func (r *Runner) LastSyncStats() *domain.SyncStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSync
}

func (r *Runner) recordSyncOutcome(ctx context.Context, stats *domain.SyncStats) {
	r.mu.Lock()
	r.lastSync = stats
	r.mu.Unlock()

	if stats.Fatal {
		logger.ErrorCtx(ctx, fmt.Errorf("sync run %s aborted: %v", stats.RunID, stats.Errors))
		return
	}
	if len(stats.Errors) > 0 {
		logger.WarnCtx(ctx, "Sync run finished with item errors",
			zap.String("run_id", stats.RunID),
			zap.Int("errors", len(stats.Errors)))
	}
}
