package schema

import (
	"time"
)

// Brand represents the brands table. Score fields accumulate podium weights
// from projected votes; the period fields are zeroed at their scheduled
// rollover. Ranking is a dense 1..N assignment over non-banned brands,
// recomputed by the ranking aggregator.
type Brand struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OnLedgerID is the numeric brand id used by the voting contract
	OnLedgerID int64 `gorm:"column:on_ledger_id;not null;uniqueIndex"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text;default:''"`
	// Score is the all-time accumulated score
	Score int64 `gorm:"column:score;not null;default:0"`
	// ScoreDay accumulates since the last daily rollover
	ScoreDay int64 `gorm:"column:score_day;not null;default:0"`
	// ScoreWeek accumulates since the last weekly rollover
	ScoreWeek int64 `gorm:"column:score_week;not null;default:0"`
	// ScoreMonth accumulates since the last monthly rollover
	ScoreMonth int64 `gorm:"column:score_month;not null;default:0"`
	// Ranking is the dense rank as of the last recompute (0 = never ranked)
	Ranking int `gorm:"column:ranking;not null;default:0"`
	// Banned brands are excluded from ranking
	Banned bool `gorm:"column:banned;not null;default:false"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}
