package model

import "time"

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tier        string `json:"tier"`
	Rarity      string `json:"rarity"`
	XP          int    `json:"xp"`
}

type UnlockedAchievement struct {
	Achievement Achievement `json:"achievement"`
	UnlockedAt  time.Time   `json:"unlocked_at"`
	WasNotified bool        `json:"was_notified"`
}

type GetCatalogRequest struct{}

type GetCatalogResponse struct {
	Achievements []Achievement `json:"achievements"`
}

type GetMyUnlockedRequest struct{}

type GetMyUnlockedResponse struct {
	Unlocked []UnlockedAchievement `json:"unlocked"`
}

type TriggerRecomputeRequest struct{}

type TriggerRecomputeResponse struct {
	NewUnlocks []UnlockEvent `json:"new_unlocks"`
}

type RepairLedgerRequest struct {
	UserID string `json:"user_id"`
}

type RepairLedgerResponse struct {
	RemovedRows int64 `json:"removed_rows"`
}
