package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/testutil"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestCreateIfNotExists(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewUnlockedAchievementRepository()
	userID := uuid.NewString()

	inserted, err := repo.CreateIfNotExists(ctx, &entity.UnlockedAchievement{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        userID,
		AchievementID: "first_application",
		UnlockedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.True(t, inserted)

	// The same achievement again is a no-op, not an error.
	inserted, err = repo.CreateIfNotExists(ctx, &entity.UnlockedAchievement{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        userID,
		AchievementID: "first_application",
		UnlockedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.False(t, inserted)

	// A different achievement or a different user still inserts.
	inserted, err = repo.CreateIfNotExists(ctx, &entity.UnlockedAchievement{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        userID,
		AchievementID: "ten_applications",
		UnlockedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.CreateIfNotExists(ctx, &entity.UnlockedAchievement{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        uuid.NewString(),
		AchievementID: "first_application",
		UnlockedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.True(t, inserted)

	unlocks, err := repo.GetAllByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, unlocks, 2)
}

func TestDedupe(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewUnlockedAchievementRepository()
	userID := uuid.NewString()

	// Simulate a database from before the uniqueness constraint existed.
	migrator := xcontext.DB(ctx).Migrator()
	require.NoError(t, migrator.DropIndex(
		&entity.UnlockedAchievement{}, "idx_unlocked_user_achievement"))

	earliest := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	keptID := uuid.NewString()
	rows := []entity.UnlockedAchievement{
		{
			Base:          entity.Base{ID: uuid.NewString()},
			UserID:        userID,
			AchievementID: "first_application",
			UnlockedAt:    earliest.Add(48 * time.Hour),
		},
		{
			Base:          entity.Base{ID: keptID},
			UserID:        userID,
			AchievementID: "first_application",
			UnlockedAt:    earliest,
		},
		{
			Base:          entity.Base{ID: uuid.NewString()},
			UserID:        userID,
			AchievementID: "first_application",
			UnlockedAt:    earliest.Add(24 * time.Hour),
		},
		{
			Base:          entity.Base{ID: uuid.NewString()},
			UserID:        userID,
			AchievementID: "ten_applications",
			UnlockedAt:    earliest.Add(72 * time.Hour),
		},
	}
	for i := range rows {
		require.NoError(t, xcontext.DB(ctx).Create(&rows[i]).Error)
	}

	removed, err := repo.Dedupe(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	unlocks, err := repo.GetAllByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, unlocks, 2)

	// The earliest row per achievement survives.
	require.Equal(t, keptID, unlocks[0].ID)
	require.Equal(t, "first_application", unlocks[0].AchievementID)
	require.Equal(t, "ten_applications", unlocks[1].AchievementID)

	// Deduping a clean ledger removes nothing.
	removed, err = repo.Dedupe(ctx, userID)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestDedupeTiedTimestamps(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewUnlockedAchievementRepository()
	userID := uuid.NewString()

	migrator := xcontext.DB(ctx).Migrator()
	require.NoError(t, migrator.DropIndex(
		&entity.UnlockedAchievement{}, "idx_unlocked_user_achievement"))

	// Three duplicates sharing the exact same unlocked_at.
	unlockedAt := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	ids := []string{"b-" + uuid.NewString(), "a-" + uuid.NewString(), "c-" + uuid.NewString()}
	for _, id := range ids {
		require.NoError(t, xcontext.DB(ctx).Create(&entity.UnlockedAchievement{
			Base:          entity.Base{ID: id},
			UserID:        userID,
			AchievementID: "first_application",
			UnlockedAt:    unlockedAt,
		}).Error)
	}

	removed, err := repo.Dedupe(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	unlocks, err := repo.GetAllByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, unlocks, 1)

	// The tie resolves to the lowest id, run after run.
	require.Equal(t, ids[1], unlocks[0].ID)

	removed, err = repo.Dedupe(ctx, userID)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestMarkNotified(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewUnlockedAchievementRepository()
	userID := uuid.NewString()

	_, err := repo.CreateIfNotExists(ctx, &entity.UnlockedAchievement{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        userID,
		AchievementID: "first_application",
		UnlockedAt:    time.Now(),
	})
	require.NoError(t, err)

	unlocks, err := repo.GetAllByUserID(ctx, userID)
	require.NoError(t, err)
	require.False(t, unlocks[0].WasNotified)

	require.NoError(t, repo.MarkNotified(ctx, userID))

	unlocks, err = repo.GetAllByUserID(ctx, userID)
	require.NoError(t, err)
	require.True(t, unlocks[0].WasNotified)
}
