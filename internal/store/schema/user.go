package schema

import (
	"time"
)

// User represents the users table - one row per projection user, keyed by the
// stable external Farcaster id. Rows are created lazily by the sync
// coordinator when a vote references an unseen fid; they are never deleted.
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// FID is the external user id from the ledger (stable numeric handle)
	FID int64 `gorm:"column:fid;not null;uniqueIndex"`
	// Username is a display handle; placeholder until the profile flow fills it in
	Username string `gorm:"column:username;not null;type:text;default:''"`
	// PhotoURL is a display avatar; placeholder until the profile flow fills it in
	PhotoURL string `gorm:"column:photo_url;not null;type:text;default:''"`
	// Points is the accumulated reward points total (monotonic under normal operation)
	Points int64 `gorm:"column:points;not null;default:0"`
	// DailyStreak is the current consecutive-activity-day counter
	DailyStreak int `gorm:"column:daily_streak;not null;default:0"`
	// MaxDailyStreak is the high-water mark of DailyStreak, never decreased
	MaxDailyStreak int `gorm:"column:max_daily_streak;not null;default:0"`
	// PowerLevel mirrors the on-ledger power level
	PowerLevel int `gorm:"column:power_level;not null;default:0"`
	// TotalVotes counts projected vote rows owned by this user
	TotalVotes int `gorm:"column:total_votes;not null;default:0"`
	// CreatedAt is the timestamp when this row was first projected
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last aggregate update
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Votes []Vote `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
