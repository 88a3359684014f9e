package streak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/mocks"
)

func day(offset int) time.Time {
	base := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestComputeStreaks(t *testing.T) {
	now := day(0).Add(15 * time.Hour)

	testCases := []struct {
		name    string
		dates   []time.Time
		current int
		max     int
	}{
		{
			name:    "no votes",
			dates:   nil,
			current: 0,
			max:     0,
		},
		{
			name:    "single vote today",
			dates:   []time.Time{day(0).Add(9 * time.Hour)},
			current: 1,
			max:     1,
		},
		{
			name:    "four consecutive days ending today",
			dates:   []time.Time{day(-3), day(-2), day(-1), day(0)},
			current: 4,
			max:     4,
		},
		{
			name:    "streak alive without a vote today yet",
			dates:   []time.Time{day(-2), day(-1)},
			current: 2,
			max:     2,
		},
		{
			name:    "gap before newest vote kills the current streak",
			dates:   []time.Time{day(-5), day(-3)},
			current: 0,
			max:     1,
		},
		{
			name:    "multiple votes on one day count once",
			dates:   []time.Time{day(-1).Add(2 * time.Hour), day(-1).Add(20 * time.Hour), day(0)},
			current: 2,
			max:     2,
		},
		{
			name:    "old long run is the max, short trailing run is current",
			dates:   []time.Time{day(-10), day(-9), day(-8), day(-7), day(0)},
			current: 1,
			max:     4,
		},
		{
			name:    "unsorted input",
			dates:   []time.Time{day(0), day(-2), day(-1)},
			current: 3,
			max:     3,
		},
		{
			name:    "gap splits runs",
			dates:   []time.Time{day(-6), day(-5), day(-3), day(-1), day(0)},
			current: 2,
			max:     2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			current, max := computeStreaks(tc.dates, now)
			assert.Equal(t, tc.current, current, "current")
			assert.Equal(t, tc.max, max, "max")
		})
	}
}

func setupTestAggregator(t *testing.T) (*mocks.MockStore, *mocks.MockClock, *Aggregator) {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	return st, clock, NewAggregator(st, clock)
}

func TestRecompute(t *testing.T) {
	st, clock, agg := setupTestAggregator(t)
	ctx := context.Background()

	now := day(0).Add(12 * time.Hour)
	clock.EXPECT().Now().Return(now)
	st.EXPECT().GetUserVoteDates(gomock.Any(), int64(7)).
		Return([]time.Time{day(0), day(-1), day(-2)}, nil)
	st.EXPECT().UpdateUserStreak(gomock.Any(), int64(7), 3, 3).Return(nil)

	result, err := agg.Recompute(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Current)
	assert.Equal(t, 3, result.Max)
}

func TestRecompute_LoadFailure(t *testing.T) {
	st, _, agg := setupTestAggregator(t)
	ctx := context.Background()

	st.EXPECT().GetUserVoteDates(gomock.Any(), int64(7)).
		Return(nil, errors.New("connection refused"))

	_, err := agg.Recompute(ctx, 7)
	assert.Error(t, err)
}

func TestResetExpired(t *testing.T) {
	st, _, agg := setupTestAggregator(t)
	ctx := context.Background()

	now := day(0).Add(12 * time.Hour)
	st.EXPECT().ResetExpiredStreaks(gomock.Any(), now.Add(-24*time.Hour)).Return(int64(5), nil)

	reset, err := agg.ResetExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reset)
}
