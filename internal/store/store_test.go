package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestUser(fid int64) *schema.User {
	return &schema.User{FID: fid}
}

func buildTestBrand(onLedgerID int64, name string) *schema.Brand {
	return &schema.Brand{OnLedgerID: onLedgerID, Name: name}
}

func buildTestVote(txHash string, userID int64, brand1, brand2, brand3 *int64, date time.Time) *schema.Vote {
	return &schema.Vote{
		TxHash:       txHash,
		UserID:       userID,
		Brand1ID:     brand1,
		Brand2ID:     brand2,
		Brand3ID:     brand3,
		Date:         date,
		DayBucket:    date.Unix() / 86400,
		CostPaid:     "1000000000000000",
		PointsEarned: domain.BaselineVotePoints,
		Season:       1,
	}
}

func createTestUser(t *testing.T, st Store, fid int64) *schema.User {
	user := buildTestUser(fid)
	require.NoError(t, st.CreateUser(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func createTestBrand(t *testing.T, st Store, onLedgerID int64, name string) *schema.Brand {
	brand := buildTestBrand(onLedgerID, name)
	require.NoError(t, st.CreateBrand(context.Background(), brand))
	require.NotZero(t, brand.ID)
	return brand
}

func createTestVote(t *testing.T, st Store, vote *schema.Vote) {
	t.Helper()
	inserted, err := st.CreateVote(context.Background(), vote)
	require.NoError(t, err)
	require.True(t, inserted)
}

// =============================================================================
// User tests
// =============================================================================

func testUserLifecycle(t *testing.T, st Store) {
	ctx := context.Background()

	user := createTestUser(t, st, 100)

	got, err := st.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(100), got.FID)
	assert.Equal(t, int64(0), got.Points)
	assert.Equal(t, 0, got.PowerLevel)

	// Unknown user is nil, not an error
	missing, err := st.GetUserByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, st.UpdateUserPowerLevel(ctx, user.ID, 5))
	got, err = st.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.PowerLevel)
}

func testGetUsersByFIDs(t *testing.T, st Store) {
	ctx := context.Background()

	createTestUser(t, st, 100)
	createTestUser(t, st, 200)

	users, err := st.GetUsersByFIDs(ctx, []int64{100, 200, 300})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(100), users[100].FID)
	assert.Equal(t, int64(200), users[200].FID)
	// Missing fid is simply absent
	_, ok := users[300]
	assert.False(t, ok)

	// Empty input short-circuits
	users, err = st.GetUsersByFIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func testApplyVoteAggregates(t *testing.T, st Store) {
	ctx := context.Background()

	user := createTestUser(t, st, 100)

	require.NoError(t, st.ApplyVoteAggregates(ctx, user.ID, domain.BaselineVotePoints))
	require.NoError(t, st.ApplyVoteAggregates(ctx, user.ID, domain.BaselineVotePoints))

	got, err := st.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2*domain.BaselineVotePoints), got.Points)
	assert.Equal(t, 2, got.TotalVotes)
}

func testUpdateUserStreak(t *testing.T, st Store) {
	ctx := context.Background()

	user := createTestUser(t, st, 100)

	require.NoError(t, st.UpdateUserStreak(ctx, user.ID, 4, 6))
	got, err := st.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.DailyStreak)
	assert.Equal(t, 6, got.MaxDailyStreak)

	// Max is a high-water mark: a smaller recomputed max never lowers it
	require.NoError(t, st.UpdateUserStreak(ctx, user.ID, 1, 2))
	got, err = st.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.DailyStreak)
	assert.Equal(t, 6, got.MaxDailyStreak)
}

func testResetExpiredStreaks(t *testing.T, st Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	active := createTestUser(t, st, 100)
	stale := createTestUser(t, st, 200)
	require.NoError(t, st.UpdateUserStreak(ctx, active.ID, 3, 3))
	require.NoError(t, st.UpdateUserStreak(ctx, stale.ID, 7, 7))

	createTestVote(t, st, buildTestVote("0xactive", active.ID, nil, nil, nil, now.Add(-2*time.Hour)))
	createTestVote(t, st, buildTestVote("0xstale", stale.ID, nil, nil, nil, now.Add(-72*time.Hour)))

	reset, err := st.ResetExpiredStreaks(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), reset)

	got, err := st.GetUserByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.DailyStreak)

	got, err = st.GetUserByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.DailyStreak)
	assert.Equal(t, 7, got.MaxDailyStreak)
}

// =============================================================================
// Vote tests
// =============================================================================

func testCreateVoteIdempotent(t *testing.T, st Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	user := createTestUser(t, st, 100)
	brand := createTestBrand(t, st, 1, "alpha")

	vote := buildTestVote("0xaaa", user.ID, &brand.ID, &brand.ID, &brand.ID, now)
	inserted, err := st.CreateVote(ctx, vote)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same tx hash again is a no-op and reports false, so callers know not
	// to credit aggregates a second time
	dup := buildTestVote("0xaaa", user.ID, &brand.ID, &brand.ID, &brand.ID, now)
	dup.PointsEarned = 99
	inserted, err = st.CreateVote(ctx, dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := st.CountVotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := st.GetVoteByTxHash(ctx, "0xaaa")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.BaselineVotePoints, got.PointsEarned)

	missing, err := st.GetVoteByTxHash(ctx, "0xmissing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testGetExistingTxHashes(t *testing.T, st Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	user := createTestUser(t, st, 100)
	createTestVote(t, st, buildTestVote("0x1", user.ID, nil, nil, nil, now))
	createTestVote(t, st, buildTestVote("0x2", user.ID, nil, nil, nil, now))

	existing, err := st.GetExistingTxHashes(ctx, []string{"0x1", "0x2", "0x3"})
	require.NoError(t, err)
	require.Len(t, existing, 2)
	_, ok := existing["0x1"]
	assert.True(t, ok)
	_, ok = existing["0x3"]
	assert.False(t, ok)
}

func testCorruptedVotesAndRepair(t *testing.T, st Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	user := createTestUser(t, st, 100)
	b1 := createTestBrand(t, st, 1, "alpha")
	b2 := createTestBrand(t, st, 2, "beta")
	b3 := createTestBrand(t, st, 3, "gamma")

	// One healthy row, one with a missing podium slot
	createTestVote(t, st, buildTestVote("0xok", user.ID, &b1.ID, &b2.ID, &b3.ID, now))
	createTestVote(t, st, buildTestVote("0xbad", user.ID, &b1.ID, nil, &b3.ID, now))

	corrupted, err := st.GetCorruptedVotes(ctx)
	require.NoError(t, err)
	require.Len(t, corrupted, 1)
	assert.Equal(t, "0xbad", corrupted[0].TxHash)
	assert.True(t, corrupted[0].Corrupted())

	require.NoError(t, st.RepairVoteBrands(ctx, "0xbad", b1.ID, b2.ID, b3.ID, "2000000000000000", 123))

	got, err := st.GetVoteByTxHash(ctx, "0xbad")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Corrupted())
	assert.Equal(t, b2.ID, *got.Brand2ID)
	assert.Equal(t, "2000000000000000", got.CostPaid)
	assert.Equal(t, int64(123), got.DayBucket)

	corrupted, err = st.GetCorruptedVotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, corrupted)

	// Repairing an unknown row is an explicit error
	err = st.RepairVoteBrands(ctx, "0xmissing", b1.ID, b2.ID, b3.ID, "0", 0)
	assert.ErrorIs(t, err, domain.ErrVoteNotFound)
}

func testGetUserVoteDates(t *testing.T, st Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	user := createTestUser(t, st, 100)
	for i, tx := range []string{"0x1", "0x2", "0x3"} {
		createTestVote(t, st, buildTestVote(tx, user.ID, nil, nil, nil, now.Add(-time.Duration(i)*24*time.Hour)))
	}

	dates, err := st.GetUserVoteDates(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, dates, 3)
	// Newest first
	assert.True(t, dates[0].After(dates[1]))
	assert.True(t, dates[1].After(dates[2]))
}

// =============================================================================
// Brand tests
// =============================================================================

func testGetBrandsByOnLedgerIDs(t *testing.T, st Store) {
	ctx := context.Background()

	createTestBrand(t, st, 1, "alpha")
	createTestBrand(t, st, 2, "beta")

	brands, err := st.GetBrandsByOnLedgerIDs(ctx, []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "alpha", brands[1].Name)
	assert.Equal(t, "beta", brands[2].Name)
	_, ok := brands[3]
	assert.False(t, ok)
}

func testApplyPodiumScores(t *testing.T, st Store) {
	ctx := context.Background()

	b1 := createTestBrand(t, st, 1, "alpha")
	b2 := createTestBrand(t, st, 2, "beta")
	b3 := createTestBrand(t, st, 3, "gamma")

	require.NoError(t, st.ApplyPodiumScores(ctx, b1.ID, b2.ID, b3.ID))
	require.NoError(t, st.ApplyPodiumScores(ctx, b1.ID, b2.ID, b3.ID))

	brands, err := st.GetBrandsByOnLedgerIDs(ctx, []int64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, int64(2*domain.FirstPlaceWeight), brands[1].Score)
	assert.Equal(t, int64(2*domain.SecondPlaceWeight), brands[2].Score)
	assert.Equal(t, int64(2*domain.ThirdPlaceWeight), brands[3].Score)

	// Every score column moves together
	assert.Equal(t, int64(2*domain.FirstPlaceWeight), brands[1].ScoreDay)
	assert.Equal(t, int64(2*domain.FirstPlaceWeight), brands[1].ScoreWeek)
	assert.Equal(t, int64(2*domain.FirstPlaceWeight), brands[1].ScoreMonth)
}

func testGetRankedBrands(t *testing.T, st Store) {
	ctx := context.Background()

	low := createTestBrand(t, st, 1, "low")
	high := createTestBrand(t, st, 2, "high")

	banned := &schema.Brand{OnLedgerID: 3, Name: "banned", Banned: true}
	require.NoError(t, st.CreateBrand(ctx, banned))

	// high gets 60, banned gets 30, low gets 10; banned is excluded anyway
	require.NoError(t, st.ApplyPodiumScores(ctx, high.ID, banned.ID, low.ID))

	brands, err := st.GetRankedBrands(ctx, domain.RankPeriodAllTime)
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "high", brands[0].Name)
	assert.Equal(t, "low", brands[1].Name)

	// Tie-break on equal scores is previous ranking, then id
	tied1 := createTestBrand(t, st, 5, "tied1")
	tied2 := createTestBrand(t, st, 6, "tied2")
	require.NoError(t, st.UpdateBrandRanking(ctx, tied1.ID, 9))
	require.NoError(t, st.UpdateBrandRanking(ctx, tied2.ID, 4))

	brands, err = st.GetRankedBrands(ctx, domain.RankPeriodAllTime)
	require.NoError(t, err)
	var names []string
	for _, b := range brands {
		if b.Score == 0 {
			names = append(names, b.Name)
		}
	}
	require.Len(t, names, 2)
	assert.Equal(t, []string{"tied2", "tied1"}, names)
}

func testResetPeriodScores(t *testing.T, st Store) {
	ctx := context.Background()

	b1 := createTestBrand(t, st, 1, "alpha")
	b2 := createTestBrand(t, st, 2, "beta")
	require.NoError(t, st.ApplyPodiumScores(ctx, b1.ID, b2.ID, b2.ID))

	// All-time is never reset
	_, err := st.ResetPeriodScores(ctx, domain.RankPeriodAllTime)
	require.Error(t, err)

	reset, err := st.ResetPeriodScores(ctx, domain.RankPeriodDay)
	require.NoError(t, err)
	assert.Equal(t, int64(2), reset)

	brands, err := st.GetBrandsByOnLedgerIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(0), brands[1].ScoreDay)
	assert.NotZero(t, brands[1].Score)
	assert.NotZero(t, brands[1].ScoreWeek)

	// Already-zero rows are not counted again
	reset, err = st.ResetPeriodScores(ctx, domain.RankPeriodDay)
	require.NoError(t, err)
	assert.Equal(t, int64(0), reset)
}

func testLookupBatching(t *testing.T, st Store) {
	ctx := context.Background()

	// More ids than one IN-clause batch
	fids := make([]int64, 0, lookupBatchSize+10)
	for i := 0; i < lookupBatchSize+10; i++ {
		fid := int64(10000 + i)
		fids = append(fids, fid)
		if i%100 == 0 {
			createTestUser(t, st, fid)
		}
	}

	users, err := st.GetUsersByFIDs(ctx, fids)
	require.NoError(t, err)
	assert.Len(t, users, (lookupBatchSize+10+99)/100)
}

// RunStoreTests runs the shared store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"UserLifecycle", testUserLifecycle},
		{"GetUsersByFIDs", testGetUsersByFIDs},
		{"ApplyVoteAggregates", testApplyVoteAggregates},
		{"UpdateUserStreak", testUpdateUserStreak},
		{"ResetExpiredStreaks", testResetExpiredStreaks},
		{"CreateVoteIdempotent", testCreateVoteIdempotent},
		{"GetExistingTxHashes", testGetExistingTxHashes},
		{"CorruptedVotesAndRepair", testCorruptedVotesAndRepair},
		{"GetUserVoteDates", testGetUserVoteDates},
		{"GetBrandsByOnLedgerIDs", testGetBrandsByOnLedgerIDs},
		{"ApplyPodiumScores", testApplyPodiumScores},
		{"GetRankedBrands", testGetRankedBrands},
		{"ResetPeriodScores", testResetPeriodScores},
		{"LookupBatching", testLookupBatching},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
