package store

import (
	"context"
	"time"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store/schema"
)

// Store defines the interface for projection database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetUserByID retrieves a user by its internal id
	GetUserByID(ctx context.Context, userID int64) (*schema.User, error)
	// GetUsersByFIDs retrieves users for a set of external ids, keyed by fid.
	// Missing fids are simply absent from the result.
	GetUsersByFIDs(ctx context.Context, fids []int64) (map[int64]*schema.User, error)
	// CreateUser inserts a new projection user
	CreateUser(ctx context.Context, user *schema.User) error
	// UpdateUserPowerLevel sets the mirrored on-ledger power level
	UpdateUserPowerLevel(ctx context.Context, userID int64, powerLevel int) error
	// ApplyVoteAggregates credits points and bumps the vote counter for a user
	ApplyVoteAggregates(ctx context.Context, userID int64, points int) error
	// UpdateUserStreak stores a recomputed streak pair
	UpdateUserStreak(ctx context.Context, userID int64, current, max int) error
	// ResetExpiredStreaks zeroes daily_streak for users with no vote at or
	// after the cutoff, returning the number of affected rows
	ResetExpiredStreaks(ctx context.Context, cutoff time.Time) (int64, error)

	// GetExistingTxHashes returns which of the given tx hashes are already projected
	GetExistingTxHashes(ctx context.Context, txHashes []string) (map[string]struct{}, error)
	// GetVoteByTxHash retrieves a vote row, nil if absent
	GetVoteByTxHash(ctx context.Context, txHash string) (*schema.Vote, error)
	// CreateVote inserts a vote row. A conflicting tx hash is a no-op and
	// reports false, so callers can skip the per-vote aggregate credits when
	// an overlapping run already projected the tx.
	CreateVote(ctx context.Context, vote *schema.Vote) (bool, error)
	// GetCorruptedVotes returns rows with one or more unresolved brand links
	GetCorruptedVotes(ctx context.Context) ([]schema.Vote, error)
	// RepairVoteBrands overwrites the brand links and re-derived fields of a vote
	RepairVoteBrands(ctx context.Context, txHash string, brand1, brand2, brand3 int64, costPaid string, dayBucket int64) error
	// GetUserVoteDates returns the vote timestamps for a user, newest first
	GetUserVoteDates(ctx context.Context, userID int64) ([]time.Time, error)
	// CountVotes returns the total number of projected vote rows
	CountVotes(ctx context.Context) (int64, error)

	// CreateBrand inserts a brand. Brands are reference data seeded by the
	// admin flow, never by sync.
	CreateBrand(ctx context.Context, brand *schema.Brand) error
	// GetBrandsByOnLedgerIDs retrieves brands for a set of on-ledger ids, keyed
	// by on-ledger id
	GetBrandsByOnLedgerIDs(ctx context.Context, onLedgerIDs []int64) (map[int64]*schema.Brand, error)
	// ApplyPodiumScores credits the fixed podium weights to the three brands of
	// a projected vote, in all score columns
	ApplyPodiumScores(ctx context.Context, first, second, third int64) error
	// GetRankedBrands returns non-banned brands ordered by the period's score
	// descending, ties broken by stable prior ranking
	GetRankedBrands(ctx context.Context, period domain.RankPeriod) ([]schema.Brand, error)
	// UpdateBrandRanking stores a recomputed rank
	UpdateBrandRanking(ctx context.Context, brandID int64, rank int) error
	// ResetPeriodScores zeroes the period's score column for all brands,
	// returning the number of affected rows
	ResetPeriodScores(ctx context.Context, period domain.RankPeriod) (int64, error)
}
