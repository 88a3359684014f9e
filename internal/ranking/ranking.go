package ranking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store"
)

// periodEpoch anchors period boundary math. Periods are fixed-width windows
// counted from this instant, not calendar months.
var periodEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Config holds ranking aggregator tuning
type Config struct {
	// QuietPeriod is how long the queue must stay untouched before a recompute
	// fires. Bursts of enqueues within it coalesce into one recompute.
	QuietPeriod time.Duration
}

// Aggregator maintains the dense all-time brand ranking. Score changes are
// enqueued as they happen and coalesced: the recompute runs once per burst,
// after the queue has been quiet for the configured period.
type Aggregator struct {
	config Config
	store  store.Store

	mu      sync.Mutex
	pending map[int64]struct{}
	timer   *time.Timer
	closed  bool
}

// NewAggregator creates a ranking aggregator
func NewAggregator(config Config, st store.Store) *Aggregator {
	if config.QuietPeriod == 0 {
		config.QuietPeriod = 5 * time.Second
	}
	return &Aggregator{
		config:  config,
		store:   st,
		pending: make(map[int64]struct{}),
	}
}

// Enqueue marks a brand's score as changed and arms (or re-arms) the debounce
// timer. Safe for concurrent use.
func (a *Aggregator) Enqueue(brandID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	a.pending[brandID] = struct{}{}
	if a.timer == nil {
		a.timer = time.AfterFunc(a.config.QuietPeriod, a.flush)
	} else {
		a.timer.Reset(a.config.QuietPeriod)
	}
}

// Close cancels any armed recompute. Pending work is dropped; the next
// enqueue or scheduled full recompute will cover it.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// flush runs when the debounce timer fires
func (a *Aggregator) flush() {
	a.mu.Lock()
	queued := len(a.pending)
	a.pending = make(map[int64]struct{})
	a.timer = nil
	a.mu.Unlock()

	if queued == 0 {
		return
	}

	ctx := context.Background()
	updated, err := a.RecomputeAll(ctx, domain.RankPeriodAllTime)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.Int("queued_brands", queued))
		return
	}

	logger.InfoCtx(ctx, "Recomputed brand ranking",
		zap.Int("queued_brands", queued),
		zap.Int("updated", updated))
}

// RecomputeAll rebuilds the dense ranking over all non-banned brands, ordered
// by the period's score. Ties break by previous ranking, then by id, so the
// ordering is total and reruns are stable. Only brands whose rank actually
// changed are written. Returns the number of rows updated.
func (a *Aggregator) RecomputeAll(ctx context.Context, period domain.RankPeriod) (int, error) {
	if !domain.IsValidRankPeriod(period) {
		return 0, fmt.Errorf("invalid rank period %q", period)
	}

	brands, err := a.store.GetRankedBrands(ctx, period)
	if err != nil {
		return 0, fmt.Errorf("failed to load brands for ranking: %w", err)
	}

	updated := 0
	for i, brand := range brands {
		rank := i + 1
		if brand.Ranking == rank {
			continue
		}
		if err := a.store.UpdateBrandRanking(ctx, brand.ID, rank); err != nil {
			return updated, fmt.Errorf("failed to update ranking for brand %d: %w", brand.ID, err)
		}
		updated++
	}

	return updated, nil
}

// ResetPeriod zeroes the period's score column for all brands and returns the
// number of rows affected. All-time scores are never reset.
func (a *Aggregator) ResetPeriod(ctx context.Context, period domain.RankPeriod) (int64, error) {
	reset, err := a.store.ResetPeriodScores(ctx, period)
	if err != nil {
		return 0, fmt.Errorf("failed to reset %s scores: %w", period, err)
	}

	logger.InfoCtx(ctx, "Reset period scores",
		zap.String("period", string(period)),
		zap.Int64("brands", reset))
	return reset, nil
}

// PeriodStart returns the start of the period window containing now. Windows
// are fixed-width and counted from a fixed epoch: a day is 24h, a week 168h
// and a month 720h. Crossing a boundary is what triggers a period reset.
func PeriodStart(period domain.RankPeriod, now time.Time) time.Time {
	width := PeriodWidth(period)
	if width == 0 {
		return periodEpoch
	}

	elapsed := now.UTC().Sub(periodEpoch)
	if elapsed < 0 {
		return periodEpoch
	}
	return periodEpoch.Add(elapsed.Truncate(width))
}

// PeriodWidth returns the fixed window width of a period, or 0 for all-time.
func PeriodWidth(period domain.RankPeriod) time.Duration {
	switch period {
	case domain.RankPeriodDay:
		return 24 * time.Hour
	case domain.RankPeriodWeek:
		return 7 * 24 * time.Hour
	case domain.RankPeriodMonth:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}
