package schedule

import (
	"time"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/ranking"
)

// ActionKind identifies one kind of scheduled maintenance work
type ActionKind string

const (
	// ActionSyncRecent is the frequent reconciliation over a short window
	ActionSyncRecent ActionKind = "sync_recent"
	// ActionSyncDeep is the infrequent reconciliation over a wide window,
	// catching anything the recent passes missed
	ActionSyncDeep ActionKind = "sync_deep"
	// ActionResetStreaks expires stale daily streaks
	ActionResetStreaks ActionKind = "reset_streaks"
	// ActionResetPeriod zeroes one rolling period's score column
	ActionResetPeriod ActionKind = "reset_period"
	// ActionRecomputeRanking rebuilds the dense brand ranking
	ActionRecomputeRanking ActionKind = "recompute_ranking"
)

// Action is one unit of work the planner has decided is due
type Action struct {
	Kind   ActionKind
	Period domain.RankPeriod // set for ActionResetPeriod only
}

// State is the planner's memory of what has already run. It lives only in the
// runner's process; after a restart the catch-up pass and the window overlap
// of the syncs cover whatever was missed.
type State struct {
	LastRecentSync  time.Time
	LastDeepSync    time.Time
	LastStreakSweep time.Time
	// PeriodStarts remembers the window start each rolling period was last
	// reset at, keyed by period
	PeriodStarts map[domain.RankPeriod]time.Time
}

// PlannerConfig holds the planner's cadence settings
type PlannerConfig struct {
	RecentInterval time.Duration
	DeepInterval   time.Duration
	StreakInterval time.Duration
}

// DefaultPlannerConfig returns the production cadence
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		RecentInterval: 6 * time.Hour,
		DeepInterval:   7 * 24 * time.Hour,
		StreakInterval: time.Hour,
	}
}

// rollingPeriods are the periods with finite windows, in reset order
var rollingPeriods = []domain.RankPeriod{
	domain.RankPeriodDay,
	domain.RankPeriodWeek,
	domain.RankPeriodMonth,
}

// Plan decides which maintenance actions are due at now and returns the
// advanced state. Pure function: same inputs, same outputs; the runner owns
// the clock and the side effects.
func Plan(config PlannerConfig, now time.Time, state State) (State, []Action) {
	var actions []Action

	if now.Sub(state.LastRecentSync) >= config.RecentInterval {
		actions = append(actions, Action{Kind: ActionSyncRecent})
		state.LastRecentSync = now
	}

	if now.Sub(state.LastDeepSync) >= config.DeepInterval {
		actions = append(actions, Action{Kind: ActionSyncDeep})
		state.LastDeepSync = now
	}

	if now.Sub(state.LastStreakSweep) >= config.StreakInterval {
		actions = append(actions, Action{Kind: ActionResetStreaks})
		state.LastStreakSweep = now
	}

	if state.PeriodStarts == nil {
		state.PeriodStarts = make(map[domain.RankPeriod]time.Time)
	}

	crossed := false
	for _, period := range rollingPeriods {
		start := ranking.PeriodStart(period, now)
		if state.PeriodStarts[period].Equal(start) {
			continue
		}
		// First observation of a period just initializes the state; a reset
		// only fires on an actual boundary crossing
		if !state.PeriodStarts[period].IsZero() {
			actions = append(actions, Action{Kind: ActionResetPeriod, Period: period})
			crossed = true
		}
		state.PeriodStarts[period] = start
	}
	if crossed {
		actions = append(actions, Action{Kind: ActionRecomputeRanking})
	}

	return state, actions
}
