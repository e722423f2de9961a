package achievement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"github.com/jobtrackr/backend/pkg/xredis"
	"gorm.io/gorm"
)

// LevelForXP maps a total XP to a level. Level 1 spans 0-99 XP, level 2
// spans 100-199, and so on without a cap.
func LevelForXP(totalXP int) int {
	return totalXP/100 + 1
}

func progressionCacheKey(userID string) string {
	return fmt.Sprintf("progression:%s", userID)
}

// Aggregator maintains the derived progression row. The unlock ledger joined
// with the catalog is the single source of truth; the stored totals are a
// cache of that join and can always be rebuilt.
type Aggregator struct {
	catalog *Catalog

	unlockedRepo    repository.UnlockedAchievementRepository
	progressionRepo repository.ProgressionRepository

	redisClient xredis.Client
}

func NewAggregator(
	catalog *Catalog,
	unlockedRepo repository.UnlockedAchievementRepository,
	progressionRepo repository.ProgressionRepository,
	redisClient xredis.Client,
) *Aggregator {
	return &Aggregator{
		catalog:         catalog,
		unlockedRepo:    unlockedRepo,
		progressionRepo: progressionRepo,
		redisClient:     redisClient,
	}
}

// ApplyUnlock adds one unlock's reward to the stored totals. It is the
// incremental fast path; Recompute at the end of the cycle remains the
// authority.
func (a *Aggregator) ApplyUnlock(ctx context.Context, userID string, xpReward int) error {
	err := a.progressionRepo.ApplyUnlock(ctx, userID, xpReward)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// First unlock for this user, no progression row yet.
	_, err = a.Recompute(ctx, userID)
	return err
}

// Recompute rebuilds the progression from the full ledger and stores it.
// Ledger rows referencing ids missing from the catalog contribute nothing;
// they are logged and skipped, never failed on.
func (a *Aggregator) Recompute(ctx context.Context, userID string) (*entity.Progression, error) {
	unlocks, err := a.unlockedRepo.GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var totalXP, unlockedCount int
	for _, unlock := range unlocks {
		definition, ok := a.catalog.Get(unlock.AchievementID)
		if !ok {
			xcontext.Logger(ctx).Warnf(
				"Ledger row %s references unknown achievement %s",
				unlock.ID, unlock.AchievementID)
			continue
		}

		totalXP += definition.XP
		unlockedCount++
	}

	progression := &entity.Progression{
		UserID:        userID,
		TotalXP:       totalXP,
		Level:         LevelForXP(totalXP),
		UnlockedCount: unlockedCount,
		UpdatedAt:     time.Now(),
	}

	if stored, err := a.progressionRepo.GetByUserID(ctx, userID); err == nil {
		if stored.TotalXP != totalXP || stored.UnlockedCount != unlockedCount {
			xcontext.Logger(ctx).Warnf(
				"Progression drift for user %s: stored xp=%d count=%d, ledger xp=%d count=%d",
				userID, stored.TotalXP, stored.UnlockedCount, totalXP, unlockedCount)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := a.progressionRepo.Upsert(ctx, progression); err != nil {
		return nil, err
	}

	a.refreshCache(ctx, progression)
	return progression, nil
}

// GetProgression serves reads through the redis cache. A miss falls back to
// the database; a missing row means the user simply has no unlocks yet.
func (a *Aggregator) GetProgression(ctx context.Context, userID string) (*entity.Progression, error) {
	if a.redisClient != nil {
		var cached entity.Progression
		err := a.redisClient.GetObj(ctx, progressionCacheKey(userID), &cached)
		if err == nil {
			return &cached, nil
		}

		if !errors.Is(err, xredis.ErrNil) {
			xcontext.Logger(ctx).Warnf("Cannot read progression cache: %v", err)
		}
	}

	progression, err := a.progressionRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.Progression{UserID: userID, Level: LevelForXP(0)}, nil
		}

		return nil, err
	}

	a.refreshCache(ctx, progression)
	return progression, nil
}

func (a *Aggregator) refreshCache(ctx context.Context, progression *entity.Progression) {
	if a.redisClient == nil {
		return
	}

	ttl := xcontext.Configs(ctx).Engine.ProgressionCacheTTL
	err := a.redisClient.SetObj(ctx, progressionCacheKey(progression.UserID), progression, ttl)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot refresh progression cache: %v", err)
	}
}
