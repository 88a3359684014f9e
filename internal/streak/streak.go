package streak

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store"
)

// Aggregator derives per-user daily voting streaks from vote history. The vote
// rows are the source of truth; the cached streak columns are always
// recomputable from them.
type Aggregator struct {
	store store.Store
	clock adapter.Clock
}

// NewAggregator creates a streak aggregator
func NewAggregator(st store.Store, clock adapter.Clock) *Aggregator {
	return &Aggregator{store: st, clock: clock}
}

// Recompute rebuilds one user's streak from their vote history and persists
// the result. The stored max is a high-water mark: it only ever goes up.
func (a *Aggregator) Recompute(ctx context.Context, userID int64) (*domain.StreakResult, error) {
	dates, err := a.store.GetUserVoteDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vote dates: %w", err)
	}

	current, max := computeStreaks(dates, a.clock.Now())

	if err := a.store.UpdateUserStreak(ctx, userID, current, max); err != nil {
		return nil, fmt.Errorf("failed to persist streak: %w", err)
	}

	logger.DebugCtx(ctx, "Recomputed streak",
		zap.Int64("user_id", userID),
		zap.Int("current", current),
		zap.Int("max", max))

	return &domain.StreakResult{Current: current, Max: max}, nil
}

// ResetExpired zeroes the current streak of every user whose most recent vote
// is older than the reset age. Max streaks are untouched. Returns the number
// of users reset.
func (a *Aggregator) ResetExpired(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-time.Duration(domain.StreakResetAgeHours) * time.Hour)

	reset, err := a.store.ResetExpiredStreaks(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to reset expired streaks: %w", err)
	}

	if reset > 0 {
		logger.InfoCtx(ctx, "Reset expired streaks", zap.Int64("users", reset))
	}
	return reset, nil
}

// computeStreaks derives the current and maximum consecutive-day streaks from
// vote timestamps. Days are UTC calendar dates; multiple votes on one date
// count once. dates may arrive in any order. The current streak counts back
// from today (or yesterday, when today has no vote yet); a gap of more than
// one day before the newest vote means the current streak is 0.
func computeStreaks(dates []time.Time, now time.Time) (current, max int) {
	if len(dates) == 0 {
		return 0, 0
	}

	seen := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		day := d.UTC().Truncate(24 * time.Hour)
		seen[day] = struct{}{}
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// Longest run of consecutive dates anywhere in the history
	run := 1
	max = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
			if run > max {
				max = run
			}
		} else {
			run = 1
		}
	}

	// The current streak is alive only if the newest date is today or
	// yesterday; it then equals the length of the trailing run
	today := now.UTC().Truncate(24 * time.Hour)
	newest := days[len(days)-1]
	if today.Sub(newest) > 24*time.Hour {
		return 0, max
	}

	current = 1
	for i := len(days) - 1; i > 0; i-- {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			break
		}
		current++
	}
	return current, max
}
