package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/pkg/xcontext"

	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderBoardFilter struct {
	Offset int
	Limit  int
}

type ProgressionRepository interface {
	Upsert(ctx context.Context, progression *entity.Progression) error
	GetByUserID(ctx context.Context, userID string) (*entity.Progression, error)

	// ApplyUnlock is the incremental fast path: one UPDATE adding the reward
	// to the stored totals. The aggregator verifies its result against a
	// from-scratch recompute.
	ApplyUnlock(ctx context.Context, userID string, xpReward int) error

	GetLeaderBoard(ctx context.Context, filter *LeaderBoardFilter) ([]entity.Progression, error)

	// GetPrevLeaderBoard returns the page served by the previous
	// GetLeaderBoard call with the same filter, for rank-delta display.
	GetPrevLeaderBoard(filter *LeaderBoardFilter) []entity.Progression
}

type progressionRepository struct {
	// prevLeaderBoard keeps the last page served per filter so rank deltas
	// survive between requests without another full scan.
	prevLeaderBoard *xsync.MapOf[string, []entity.Progression]
}

func NewProgressionRepository() *progressionRepository {
	return &progressionRepository{
		prevLeaderBoard: xsync.NewMapOf[[]entity.Progression](),
	}
}

func (r *progressionRepository) Upsert(ctx context.Context, progression *entity.Progression) error {
	progression.UpdatedAt = time.Now()
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_xp":       progression.TotalXP,
				"level":          progression.Level,
				"unlocked_count": progression.UnlockedCount,
				"updated_at":     progression.UpdatedAt,
			}),
		}).
		Create(progression).Error
}

func (r *progressionRepository) GetByUserID(
	ctx context.Context, userID string,
) (*entity.Progression, error) {
	var result entity.Progression
	err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *progressionRepository) ApplyUnlock(
	ctx context.Context, userID string, xpReward int,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Progression{}).
		Where("user_id=?", userID).
		Updates(map[string]any{
			"total_xp": gorm.Expr("total_xp+?", xpReward),
			// Integer floor division written portably (mysql / yields a
			// decimal, sqlite an integer).
			"level":          gorm.Expr("(total_xp+? - (total_xp+?)%100)/100 + 1", xpReward, xpReward),
			"unlocked_count": gorm.Expr("unlocked_count+1"),
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *progressionRepository) GetLeaderBoard(
	ctx context.Context, filter *LeaderBoardFilter,
) ([]entity.Progression, error) {
	var result []entity.Progression
	err := xcontext.DB(ctx).Model(&entity.Progression{}).
		Order("total_xp DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	r.prevLeaderBoard.Store(leaderBoardKey(filter), result)
	return result, nil
}

func (r *progressionRepository) GetPrevLeaderBoard(filter *LeaderBoardFilter) []entity.Progression {
	prev, ok := r.prevLeaderBoard.Load(leaderBoardKey(filter))
	if !ok {
		return nil
	}

	return prev
}

func leaderBoardKey(filter *LeaderBoardFilter) string {
	return fmt.Sprintf("%d|%d", filter.Offset, filter.Limit)
}
