package repository

import (
	"context"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UnlockedAchievementRepository interface {
	// CreateIfNotExists atomically inserts the unlock row unless one already
	// exists for (user, achievement). It reports whether a row was inserted.
	// It must never be implemented as an existence check followed by an
	// insert; the uniqueness constraint is the arbiter under concurrency.
	CreateIfNotExists(ctx context.Context, unlock *entity.UnlockedAchievement) (bool, error)

	GetAllByUserID(ctx context.Context, userID string) ([]entity.UnlockedAchievement, error)
	MarkNotified(ctx context.Context, userID string) error

	// Dedupe removes ledger rows predating the uniqueness constraint: for
	// every achievement with more than one row for this user, only the
	// earliest row by (unlocked_at, id) survives. It returns the number of
	// rows deleted.
	Dedupe(ctx context.Context, userID string) (int64, error)
}

type unlockedAchievementRepository struct{}

func NewUnlockedAchievementRepository() *unlockedAchievementRepository {
	return &unlockedAchievementRepository{}
}

func (r *unlockedAchievementRepository) CreateIfNotExists(
	ctx context.Context, unlock *entity.UnlockedAchievement,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "achievement_id"},
			},
			DoNothing: true,
		}).
		Create(unlock)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *unlockedAchievementRepository) GetAllByUserID(
	ctx context.Context, userID string,
) ([]entity.UnlockedAchievement, error) {
	var result []entity.UnlockedAchievement
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("unlocked_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *unlockedAchievementRepository) MarkNotified(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Model(&entity.UnlockedAchievement{}).
		Where("user_id=?", userID).
		Update("was_notified", true).Error
}

func (r *unlockedAchievementRepository) Dedupe(
	ctx context.Context, userID string,
) (int64, error) {
	var unlocks []entity.UnlockedAchievement
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("unlocked_at ASC, id ASC").
		Find(&unlocks).Error
	if err != nil {
		return 0, err
	}

	// Ties on unlocked_at break by id, so repeated repairs always keep the
	// same row.
	keep := map[string]string{}
	var duplicateIDs []string
	for _, unlock := range unlocks {
		if _, ok := keep[unlock.AchievementID]; !ok {
			keep[unlock.AchievementID] = unlock.ID
			continue
		}

		duplicateIDs = append(duplicateIDs, unlock.ID)
	}

	if len(duplicateIDs) == 0 {
		return 0, nil
	}

	// Hard delete: a soft-deleted duplicate would still occupy the unique
	// index.
	tx := xcontext.DB(ctx).Unscoped().
		Where("id IN (?)", duplicateIDs).
		Delete(&entity.UnlockedAchievement{})
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}
