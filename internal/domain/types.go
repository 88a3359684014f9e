package domain

import (
	"time"
)

// Season is a coarse epoch flag distinguishing the scoring regimes applied to
// historical vote rows.
type Season int

const (
	SeasonOne Season = 1
	SeasonTwo Season = 2
)

// SeasonForDayBucket maps a ledger day bucket to the season its votes belong
// to. seasonTwoStartDay is the first day bucket of season two.
func SeasonForDayBucket(dayBucket, seasonTwoStartDay int64) Season {
	if seasonTwoStartDay > 0 && dayBucket >= seasonTwoStartDay {
		return SeasonTwo
	}
	return SeasonOne
}

// VoteEvent represents a decoded podium vote from the on-chain ledger.
// BrandIDs holds the on-ledger brand identifiers in podium order.
type VoteEvent struct {
	VoterAddress string    `json:"voter_address"`
	FID          int64     `json:"fid"` // external user id (Farcaster id)
	DayBucket    int64     `json:"day_bucket"`
	BrandIDs     []int64   `json:"brand_ids"`
	CostWei      string    `json:"cost_wei"`
	BlockNumber  uint64    `json:"block_number"`
	TxHash       string    `json:"tx_hash"`
	TxIndex      uint64    `json:"tx_index"`
	Timestamp    time.Time `json:"timestamp"`
}

// Valid reports whether the event carries a well-formed podium triple.
func (e *VoteEvent) Valid() bool {
	if e.TxHash == "" || e.FID <= 0 {
		return false
	}
	if len(e.BrandIDs) != PodiumSize {
		return false
	}
	for _, id := range e.BrandIDs {
		if id <= 0 {
			return false
		}
	}
	return true
}

// PowerLevelEvent represents a decoded power-level-up from the ledger.
type PowerLevelEvent struct {
	FID         int64     `json:"fid"`
	PowerLevel  int       `json:"power_level"`
	BlockNumber uint64    `json:"block_number"`
	TxHash      string    `json:"tx_hash"`
	Timestamp   time.Time `json:"timestamp"`
}

// SyncStats is the ephemeral result of one coordinator run. It is returned to
// the invoking scheduler for logging and alerting, never persisted.
type SyncStats struct {
	RunID          string    `json:"run_id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	CheckedVotes   int       `json:"checked_votes"`
	InsertedVotes  int       `json:"inserted_votes"`
	CheckedPowers  int       `json:"checked_powers"`
	UpdatedPowers  int       `json:"updated_powers"`
	CreatedUsers   int       `json:"created_users"`
	Errors         []string  `json:"errors,omitempty"`
	Fatal          bool      `json:"fatal"`
}

// AddError records a non-fatal per-item failure.
func (s *SyncStats) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// StreakResult is the outcome of a per-user streak recomputation.
type StreakResult struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// RankPeriod selects which score field a ranking recompute orders by.
type RankPeriod string

const (
	RankPeriodAllTime RankPeriod = "all_time"
	RankPeriodDay     RankPeriod = "day"
	RankPeriodWeek    RankPeriod = "week"
	RankPeriodMonth   RankPeriod = "month"
)

// IsValidRankPeriod checks if a period is valid
func IsValidRankPeriod(p RankPeriod) bool {
	return p == RankPeriodAllTime || p == RankPeriodDay ||
		p == RankPeriodWeek || p == RankPeriodMonth
}

// ProjectionEvent is the normalized change notification published after a
// successful projection write.
type ProjectionEvent struct {
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"` // vote_projected, power_level_updated, vote_repaired
	TxHash    string    `json:"tx_hash,omitempty"`
	FID       int64     `json:"fid,omitempty"`
	BrandIDs  []int64   `json:"brand_ids,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ProjectionEventVoteProjected     = "vote_projected"
	ProjectionEventPowerLevelUpdated = "power_level_updated"
	ProjectionEventVoteRepaired      = "vote_repaired"
)
