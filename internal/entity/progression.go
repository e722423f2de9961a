package entity

import "time"

// Progression is derived state: always recomputable from the unlock ledger
// and the catalog. TotalXP is the sum of xp rewards over the user's unlock
// rows; Level is TotalXP/100+1.
type Progression struct {
	UserID string `gorm:"primaryKey"`

	TotalXP       int
	Level         int
	UnlockedCount int

	UpdatedAt time.Time
}
