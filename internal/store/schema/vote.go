package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Vote represents the votes table - one row per projected podium vote. The
// transaction hash is the primary identity and stays stable across re-syncs,
// which is what makes the whole sync idempotent. Brand links are nullable:
// a row with any nil slot is considered corrupted and eligible for repair.
// Rows are never deleted.
type Vote struct {
	// TxHash is the ledger transaction hash (primary identity)
	TxHash string `gorm:"column:tx_hash;primaryKey;type:text"`
	// UserID is the owning projection user
	UserID int64 `gorm:"column:user_id;not null;index"`
	// Brand1ID/Brand2ID/Brand3ID are the podium slots, nil until resolved
	Brand1ID *int64 `gorm:"column:brand1_id"`
	Brand2ID *int64 `gorm:"column:brand2_id"`
	Brand3ID *int64 `gorm:"column:brand3_id"`
	// Date is the ledger timestamp of the vote
	Date time.Time `gorm:"column:date;not null;index"`
	// DayBucket is the integer day index derived from the ledger timestamp
	DayBucket int64 `gorm:"column:day_bucket;not null;index"`
	// CostPaid is the wei cost as a decimal string
	CostPaid string `gorm:"column:cost_paid;not null;type:text;default:'0'"`
	// RewardAmount is the claimable reward as a decimal string
	RewardAmount string `gorm:"column:reward_amount;not null;type:text;default:'0'"`
	// PointsEarned is the points credited for this vote
	PointsEarned int `gorm:"column:points_earned;not null;default:0"`
	// Shared / ShareVerified are set by the share flow, not by sync
	Shared        bool `gorm:"column:shared;not null;default:false"`
	ShareVerified bool `gorm:"column:share_verified;not null;default:false"`
	// ClaimedAt is set by the claim flow, not by sync
	ClaimedAt *time.Time `gorm:"column:claimed_at"`
	// Season marks the scoring regime this vote belongs to
	Season int `gorm:"column:season;not null;default:1"`
	// RawPayload keeps the decoded ledger event for repair diagnostics
	RawPayload datatypes.JSON `gorm:"column:raw_payload"`
	// CreatedAt is the timestamp when this row was projected
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`

	// Associations
	User *User `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}

// Corrupted reports whether any podium slot is unresolved.
func (v *Vote) Corrupted() bool {
	return v.Brand1ID == nil || v.Brand2ID == nil || v.Brand3ID == nil
}
