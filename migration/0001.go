package migration

import (
	"context"
	"time"

	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// migrate0001 repairs databases that predate the uniqueness constraint on
// the unlock ledger: duplicate rows are collapsed to the earliest one, the
// progression totals are rebuilt so every achievement counts once, and the
// unique index is created.
func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()
	if migrator.HasIndex(&entity.UnlockedAchievement{}, "idx_unlocked_user_achievement") {
		return nil
	}

	var userIDs []string
	err := xcontext.DB(ctx).Model(&entity.UnlockedAchievement{}).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return err
	}

	catalog := achievement.DefaultCatalog()
	for _, userID := range userIDs {
		var unlocks []entity.UnlockedAchievement
		err := xcontext.DB(ctx).
			Where("user_id=?", userID).
			Order("unlocked_at ASC").
			Find(&unlocks).Error
		if err != nil {
			return err
		}

		seen := map[string]struct{}{}
		var duplicateIDs []string
		var totalXP, unlockedCount int
		for _, unlock := range unlocks {
			if _, ok := seen[unlock.AchievementID]; ok {
				duplicateIDs = append(duplicateIDs, unlock.ID)
				continue
			}
			seen[unlock.AchievementID] = struct{}{}

			if definition, ok := catalog.Get(unlock.AchievementID); ok {
				totalXP += definition.XP
				unlockedCount++
			}
		}

		if len(duplicateIDs) > 0 {
			err := xcontext.DB(ctx).Unscoped().
				Where("id IN (?)", duplicateIDs).
				Delete(&entity.UnlockedAchievement{}).Error
			if err != nil {
				return err
			}
		}

		progression := entity.Progression{
			UserID:        userID,
			TotalXP:       totalXP,
			Level:         achievement.LevelForXP(totalXP),
			UnlockedCount: unlockedCount,
			UpdatedAt:     time.Now(),
		}
		err = xcontext.DB(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"total_xp":       progression.TotalXP,
					"level":          progression.Level,
					"unlocked_count": progression.UnlockedCount,
					"updated_at":     progression.UpdatedAt,
				}),
			}).
			Create(&progression).Error
		if err != nil {
			return err
		}
	}

	return migrator.CreateIndex(&entity.UnlockedAchievement{}, "idx_unlocked_user_achievement")
}
