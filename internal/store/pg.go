package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store/schema"
)

// lookupBatchSize bounds the size of IN clauses for batched lookups so a full
// resync over years of history never builds a single oversized query.
const lookupBatchSize = 500

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// periodScoreColumn maps a rank period to its score column.
func periodScoreColumn(period domain.RankPeriod) (string, error) {
	switch period {
	case domain.RankPeriodAllTime:
		return "score", nil
	case domain.RankPeriodDay:
		return "score_day", nil
	case domain.RankPeriodWeek:
		return "score_week", nil
	case domain.RankPeriodMonth:
		return "score_month", nil
	default:
		return "", fmt.Errorf("invalid rank period: %s", period)
	}
}

// GetUserByID retrieves a user by its internal id
func (s *pgStore) GetUserByID(ctx context.Context, userID int64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUsersByFIDs retrieves users for a set of external ids, keyed by fid
func (s *pgStore) GetUsersByFIDs(ctx context.Context, fids []int64) (map[int64]*schema.User, error) {
	result := make(map[int64]*schema.User, len(fids))
	if len(fids) == 0 {
		return result, nil
	}

	for start := 0; start < len(fids); start += lookupBatchSize {
		end := min(start+lookupBatchSize, len(fids))

		var users []*schema.User
		err := s.db.WithContext(ctx).
			Where("fid IN ?", fids[start:end]).
			Find(&users).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get users by fids: %w", err)
		}

		for _, u := range users {
			result[u.FID] = u
		}
	}

	return result, nil
}

// CreateUser inserts a new projection user
func (s *pgStore) CreateUser(ctx context.Context, user *schema.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUserPowerLevel sets the mirrored on-ledger power level
func (s *pgStore) UpdateUserPowerLevel(ctx context.Context, userID int64, powerLevel int) error {
	err := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"power_level": powerLevel,
			"updated_at":  gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update power level: %w", err)
	}
	return nil
}

// ApplyVoteAggregates credits points and bumps the vote counter for a user
func (s *pgStore) ApplyVoteAggregates(ctx context.Context, userID int64, points int) error {
	err := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"points":      gorm.Expr("points + ?", points),
			"total_votes": gorm.Expr("total_votes + 1"),
			"updated_at":  gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to apply vote aggregates: %w", err)
	}
	return nil
}

// UpdateUserStreak stores a recomputed streak pair. The stored max is a
// high-water mark: GREATEST keeps it from ever decreasing even if the caller
// recomputes from a narrower window.
func (s *pgStore) UpdateUserStreak(ctx context.Context, userID int64, current, max int) error {
	err := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"daily_streak":     current,
			"max_daily_streak": gorm.Expr("GREATEST(max_daily_streak, ?)", max),
			"updated_at":       gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update user streak: %w", err)
	}
	return nil
}

// ResetExpiredStreaks zeroes daily_streak for users with no vote at or after
// the cutoff
func (s *pgStore) ResetExpiredStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	recentVoters := s.db.WithContext(ctx).
		Model(&schema.Vote{}).
		Select("user_id").
		Where("date >= ?", cutoff)

	res := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("daily_streak > 0 AND id NOT IN (?)", recentVoters).
		Updates(map[string]interface{}{
			"daily_streak": 0,
			"updated_at":   gorm.Expr("now()"),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to reset expired streaks: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// GetExistingTxHashes returns which of the given tx hashes are already projected
func (s *pgStore) GetExistingTxHashes(ctx context.Context, txHashes []string) (map[string]struct{}, error) {
	result := make(map[string]struct{}, len(txHashes))
	if len(txHashes) == 0 {
		return result, nil
	}

	for start := 0; start < len(txHashes); start += lookupBatchSize {
		end := min(start+lookupBatchSize, len(txHashes))

		var existing []string
		err := s.db.WithContext(ctx).
			Model(&schema.Vote{}).
			Where("tx_hash IN ?", txHashes[start:end]).
			Pluck("tx_hash", &existing).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get existing tx hashes: %w", err)
		}

		for _, h := range existing {
			result[h] = struct{}{}
		}
	}

	return result, nil
}

// GetVoteByTxHash retrieves a vote row, nil if absent
func (s *pgStore) GetVoteByTxHash(ctx context.Context, txHash string) (*schema.Vote, error) {
	var vote schema.Vote
	err := s.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

// CreateVote inserts a vote row. A conflicting tx hash is a no-op reported as
// false: overlapping sync runs race the same dedup snapshot, and only the run
// that actually inserts the row may credit the derived aggregates.
func (s *pgStore) CreateVote(ctx context.Context, vote *schema.Vote) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tx_hash"}},
			DoNothing: true,
		}).
		Create(vote)
	if res.Error != nil {
		return false, fmt.Errorf("failed to create vote: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetCorruptedVotes returns rows with one or more unresolved brand links
func (s *pgStore) GetCorruptedVotes(ctx context.Context) ([]schema.Vote, error) {
	var votes []schema.Vote
	err := s.db.WithContext(ctx).
		Where("brand1_id IS NULL OR brand2_id IS NULL OR brand3_id IS NULL").
		Order("date ASC").
		Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get corrupted votes: %w", err)
	}
	return votes, nil
}

// RepairVoteBrands overwrites the brand links and re-derived fields of a vote
func (s *pgStore) RepairVoteBrands(ctx context.Context, txHash string, brand1, brand2, brand3 int64, costPaid string, dayBucket int64) error {
	res := s.db.WithContext(ctx).
		Model(&schema.Vote{}).
		Where("tx_hash = ?", txHash).
		Updates(map[string]interface{}{
			"brand1_id":  brand1,
			"brand2_id":  brand2,
			"brand3_id":  brand3,
			"cost_paid":  costPaid,
			"day_bucket": dayBucket,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to repair vote brands: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}

// GetUserVoteDates returns the vote timestamps for a user, newest first
func (s *pgStore) GetUserVoteDates(ctx context.Context, userID int64) ([]time.Time, error) {
	var dates []time.Time
	err := s.db.WithContext(ctx).
		Model(&schema.Vote{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user vote dates: %w", err)
	}
	return dates, nil
}

// CountVotes returns the total number of projected vote rows
func (s *pgStore) CountVotes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Vote{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// CreateBrand inserts a brand
func (s *pgStore) CreateBrand(ctx context.Context, brand *schema.Brand) error {
	err := s.db.WithContext(ctx).Create(brand).Error
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// GetBrandsByOnLedgerIDs retrieves brands for a set of on-ledger ids, keyed by
// on-ledger id
func (s *pgStore) GetBrandsByOnLedgerIDs(ctx context.Context, onLedgerIDs []int64) (map[int64]*schema.Brand, error) {
	result := make(map[int64]*schema.Brand, len(onLedgerIDs))
	if len(onLedgerIDs) == 0 {
		return result, nil
	}

	for start := 0; start < len(onLedgerIDs); start += lookupBatchSize {
		end := min(start+lookupBatchSize, len(onLedgerIDs))

		var brands []*schema.Brand
		err := s.db.WithContext(ctx).
			Where("on_ledger_id IN ?", onLedgerIDs[start:end]).
			Find(&brands).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get brands by on-ledger ids: %w", err)
		}

		for _, b := range brands {
			result[b.OnLedgerID] = b
		}
	}

	return result, nil
}

// ApplyPodiumScores credits the fixed podium weights to the three brands of a
// projected vote, in all score columns
func (s *pgStore) ApplyPodiumScores(ctx context.Context, first, second, third int64) error {
	weights := map[int64]int{
		first:  domain.FirstPlaceWeight,
		second: domain.SecondPlaceWeight,
		third:  domain.ThirdPlaceWeight,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for brandID, weight := range weights {
			err := tx.Model(&schema.Brand{}).
				Where("id = ?", brandID).
				Updates(map[string]interface{}{
					"score":       gorm.Expr("score + ?", weight),
					"score_day":   gorm.Expr("score_day + ?", weight),
					"score_week":  gorm.Expr("score_week + ?", weight),
					"score_month": gorm.Expr("score_month + ?", weight),
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply podium scores: %w", err)
	}
	return nil
}

// GetRankedBrands returns non-banned brands ordered by the period's score
// descending, ties broken by stable prior ranking
func (s *pgStore) GetRankedBrands(ctx context.Context, period domain.RankPeriod) ([]schema.Brand, error) {
	column, err := periodScoreColumn(period)
	if err != nil {
		return nil, err
	}

	var brands []schema.Brand
	err = s.db.WithContext(ctx).
		Where("banned = ?", false).
		Order(fmt.Sprintf("%s DESC, ranking ASC, id ASC", column)).
		Find(&brands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ranked brands: %w", err)
	}
	return brands, nil
}

// UpdateBrandRanking stores a recomputed rank
func (s *pgStore) UpdateBrandRanking(ctx context.Context, brandID int64, rank int) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Brand{}).
		Where("id = ?", brandID).
		Update("ranking", rank).Error
	if err != nil {
		return fmt.Errorf("failed to update brand ranking: %w", err)
	}
	return nil
}

// ResetPeriodScores zeroes the period's score column for all brands. The
// all-time score is never reset.
func (s *pgStore) ResetPeriodScores(ctx context.Context, period domain.RankPeriod) (int64, error) {
	if period == domain.RankPeriodAllTime {
		return 0, fmt.Errorf("refusing to reset all-time scores")
	}

	column, err := periodScoreColumn(period)
	if err != nil {
		return 0, err
	}

	res := s.db.WithContext(ctx).
		Model(&schema.Brand{}).
		Where(fmt.Sprintf("%s <> 0", column)).
		Update(column, 0)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to reset period scores: %w", res.Error)
	}

	return res.RowsAffected, nil
}
