package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/ranking"
)

func kinds(actions []Action) []ActionKind {
	out := make([]ActionKind, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Kind)
	}
	return out
}

// primedState returns a state that ran everything at now, so nothing is due
func primedState(now time.Time) State {
	return State{
		LastRecentSync:  now,
		LastDeepSync:    now,
		LastStreakSweep: now,
		PeriodStarts: map[domain.RankPeriod]time.Time{
			domain.RankPeriodDay:   ranking.PeriodStart(domain.RankPeriodDay, now),
			domain.RankPeriodWeek:  ranking.PeriodStart(domain.RankPeriodWeek, now),
			domain.RankPeriodMonth: ranking.PeriodStart(domain.RankPeriodMonth, now),
		},
	}
}

func TestPlan_ColdStartRunsEverythingButResetsNothing(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

	state, actions := Plan(DefaultPlannerConfig(), now, State{})

	// All intervals are due from the zero state, but the first observation of
	// each period window must not fire a reset
	assert.Equal(t, []ActionKind{ActionSyncRecent, ActionSyncDeep, ActionResetStreaks}, kinds(actions))
	assert.Equal(t, now, state.LastRecentSync)
	assert.Equal(t, now, state.LastDeepSync)
	assert.Equal(t, now, state.LastStreakSweep)
	assert.Len(t, state.PeriodStarts, 3)
}

func TestPlan_NothingDue(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	state := primedState(now)

	next, actions := Plan(DefaultPlannerConfig(), now.Add(time.Minute), state)

	assert.Empty(t, actions)
	assert.Equal(t, state.LastRecentSync, next.LastRecentSync)
}

func TestPlan_RecentSyncDue(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	state := primedState(now)

	later := now.Add(6 * time.Hour)
	next, actions := Plan(DefaultPlannerConfig(), later, state)

	assert.Equal(t, []ActionKind{ActionSyncRecent}, kinds(actions))
	assert.Equal(t, later, next.LastRecentSync)
	assert.Equal(t, now, next.LastDeepSync)
}

func TestPlan_DeepSyncDue(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	state := primedState(now)
	state.LastDeepSync = now.Add(-8 * 24 * time.Hour)
	state.LastStreakSweep = now.Add(time.Hour)
	state.LastRecentSync = now.Add(time.Hour)

	_, actions := Plan(DefaultPlannerConfig(), now.Add(time.Minute), state)

	assert.Equal(t, []ActionKind{ActionSyncDeep}, kinds(actions))
}

func TestPlan_DayBoundaryCrossingFiresResetAndRecompute(t *testing.T) {
	// Period windows are counted from the 2024-01-01 epoch, so day boundaries
	// fall on UTC midnight
	before := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)
	state := primedState(before)

	after := before.Add(45 * time.Minute)
	state.LastRecentSync = after
	state.LastDeepSync = after
	state.LastStreakSweep = after

	next, actions := Plan(DefaultPlannerConfig(), after, state)

	require.Len(t, actions, 2)
	assert.Equal(t, Action{Kind: ActionResetPeriod, Period: domain.RankPeriodDay}, actions[0])
	assert.Equal(t, ActionRecomputeRanking, actions[1].Kind)
	assert.Equal(t, ranking.PeriodStart(domain.RankPeriodDay, after),
		next.PeriodStarts[domain.RankPeriodDay])
}

func TestPlan_MultiplePeriodsCrossingShareOneRecompute(t *testing.T) {
	// Jan 8 00:00 UTC is both a day and a week boundary from the epoch
	before := time.Date(2024, time.January, 7, 23, 0, 0, 0, time.UTC)
	state := primedState(before)

	after := time.Date(2024, time.January, 8, 0, 30, 0, 0, time.UTC)
	state.LastRecentSync = after
	state.LastDeepSync = after
	state.LastStreakSweep = after

	_, actions := Plan(DefaultPlannerConfig(), after, state)

	assert.Equal(t, []ActionKind{
		ActionResetPeriod,
		ActionResetPeriod,
		ActionRecomputeRanking,
	}, kinds(actions))
	assert.Equal(t, domain.RankPeriodDay, actions[0].Period)
	assert.Equal(t, domain.RankPeriodWeek, actions[1].Period)
}

func TestPlan_StateAdvancesAcrossTicks(t *testing.T) {
	config := PlannerConfig{
		RecentInterval: time.Hour,
		DeepInterval:   24 * time.Hour,
		StreakInterval: 30 * time.Minute,
	}

	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	state, actions := Plan(config, now, State{})
	require.NotEmpty(t, actions)

	// Immediately after, nothing is due again
	state, actions = Plan(config, now.Add(time.Minute), state)
	assert.Empty(t, actions)

	// Half an hour later only the streak sweep fires
	state, actions = Plan(config, now.Add(31*time.Minute), state)
	assert.Equal(t, []ActionKind{ActionResetStreaks}, kinds(actions))

	// An hour in, the recent sync joins
	_, actions = Plan(config, now.Add(62*time.Minute), state)
	assert.Equal(t, []ActionKind{ActionSyncRecent, ActionResetStreaks}, kinds(actions))
}
