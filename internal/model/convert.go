package model

import "github.com/jobtrackr/backend/internal/entity"

func ConvertProgression(progression *entity.Progression) Progression {
	return Progression{
		UserID:        progression.UserID,
		TotalXP:       progression.TotalXP,
		Level:         progression.Level,
		UnlockedCount: progression.UnlockedCount,
		UpdatedAt:     progression.UpdatedAt,
	}
}

func ConvertStreak(streak *entity.Streak) Streak {
	result := Streak{
		DailyStreak:   streak.DailyStreak,
		LongestStreak: streak.LongestStreak,
	}

	if streak.LastActivityDate.Valid {
		t := streak.LastActivityDate.Time
		result.LastActivityDate = &t
	}
	if streak.StreakStartDate.Valid {
		t := streak.StreakStartDate.Time
		result.StreakStartDate = &t
	}

	return result
}
