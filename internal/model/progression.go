package model

import "time"

type Progression struct {
	UserID        string    `json:"user_id"`
	TotalXP       int       `json:"total_xp"`
	Level         int       `json:"level"`
	UnlockedCount int       `json:"unlocked_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Streak struct {
	DailyStreak      int        `json:"daily_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	StreakStartDate  *time.Time `json:"streak_start_date,omitempty"`
}

type GetProgressionRequest struct{}

type GetProgressionResponse struct {
	Progression Progression `json:"progression"`
}

type GetStreakRequest struct{}

type GetStreakResponse struct {
	Streak Streak `json:"streak"`
}

type LeaderBoardEntry struct {
	UserID       string `json:"user_id"`
	TotalXP      int    `json:"total_xp"`
	Level        int    `json:"level"`
	CurrentRank  int    `json:"current_rank"`
	PreviousRank int    `json:"previous_rank"`
}

type GetLeaderBoardRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []LeaderBoardEntry `json:"leaderboard"`
}
