package repository

import (
	"context"
	"time"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/pkg/xcontext"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	GetListByUserID(ctx context.Context, userID string) ([]entity.Application, error)
	GetActiveUserIDs(ctx context.Context, since time.Time) ([]string, error)
}

type applicationRepository struct{}

func NewApplicationRepository() *applicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	return xcontext.DB(ctx).Create(application).Error
}

func (r *applicationRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.Application, error) {
	var result []entity.Application
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("applied_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetActiveUserIDs returns the distinct users with at least one application
// submitted after since. The daily rollover uses it to bound its fan-out.
func (r *applicationRepository) GetActiveUserIDs(
	ctx context.Context, since time.Time,
) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).Model(&entity.Application{}).
		Distinct("user_id").
		Where("applied_at >= ?", since).
		Pluck("user_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
