package entity

import "time"

// UnlockedAchievement is one ledger row: user u unlocked achievement a at t.
// The unique index over (user_id, achievement_id) is the only cross-cycle
// coordination point of the engine; every unlock goes through an atomic
// insert-if-absent against it.
type UnlockedAchievement struct {
	Base

	UserID        string `gorm:"uniqueIndex:idx_unlocked_user_achievement"`
	AchievementID string `gorm:"uniqueIndex:idx_unlocked_user_achievement"`

	UnlockedAt  time.Time
	WasNotified bool
}
