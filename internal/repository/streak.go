package repository

import (
	"context"
	"time"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type StreakRepository interface {
	Upsert(ctx context.Context, streak *entity.Streak) error
	GetByUserID(ctx context.Context, userID string) (*entity.Streak, error)
}

type streakRepository struct{}

func NewStreakRepository() *streakRepository {
	return &streakRepository{}
}

func (r *streakRepository) Upsert(ctx context.Context, streak *entity.Streak) error {
	streak.UpdatedAt = time.Now()
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"daily_streak":       streak.DailyStreak,
				"longest_streak":     streak.LongestStreak,
				"last_activity_date": streak.LastActivityDate,
				"streak_start_date":  streak.StreakStartDate,
				"updated_at":         streak.UpdatedAt,
			}),
		}).
		Create(streak).Error
}

func (r *streakRepository) GetByUserID(ctx context.Context, userID string) (*entity.Streak, error) {
	var result entity.Streak
	err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
