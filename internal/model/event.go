package model

import "time"

// ActivityEvent arrives on the activity topic whenever a tracked record
// changes. The payload intentionally carries no counters; the engine
// recomputes everything from storage.
type ActivityEvent struct {
	UserID     string    `json:"user_id" mapstructure:"user_id"`
	Type       string    `json:"type" mapstructure:"type"`
	OccurredAt time.Time `json:"occurred_at" mapstructure:"occurred_at"`
}

// UnlockEvent is emitted exactly once per (user, achievement), on the cycle
// whose ledger insert won.
type UnlockEvent struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	Name          string    `json:"name"`
	XPReward      int       `json:"xp_reward"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
