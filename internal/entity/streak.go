package entity

import (
	"database/sql"
	"time"
)

// Streak is derived state, fully recomputed from the distinct activity dates
// on every cycle rather than patched incrementally.
type Streak struct {
	UserID string `gorm:"primaryKey"`

	DailyStreak   int
	LongestStreak int

	LastActivityDate sql.NullTime
	StreakStartDate  sql.NullTime

	UpdatedAt time.Time
}
