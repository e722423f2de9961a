package repository

import (
	"context"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	Get(ctx context.Context, userID string, period entity.GoalPeriod, periodValue string) (*entity.Goal, error)
	AddProgress(ctx context.Context, userID string, period entity.GoalPeriod, periodValue string, delta int) error
}

type goalRepository struct{}

func NewGoalRepository() *goalRepository {
	return &goalRepository{}
}

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return xcontext.DB(ctx).Create(goal).Error
}

func (r *goalRepository) Get(
	ctx context.Context, userID string, period entity.GoalPeriod, periodValue string,
) (*entity.Goal, error) {
	var result entity.Goal
	err := xcontext.DB(ctx).
		Where("user_id=? AND period=? AND period_value=?", userID, period, periodValue).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *goalRepository) AddProgress(
	ctx context.Context, userID string, period entity.GoalPeriod, periodValue string, delta int,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Goal{}).
		Where("user_id=? AND period=? AND period_value=?", userID, period, periodValue).
		Update("progress", gorm.Expr("progress+?", delta))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
