package achievement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/dateutil"
	"github.com/jobtrackr/backend/pkg/testutil"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engineFixture struct {
	engine    *achievement.Engine
	publisher *testutil.MockPublisher

	applicationRepo repository.ApplicationRepository
	goalRepo        repository.GoalRepository
	unlockedRepo    repository.UnlockedAchievementRepository
	progressionRepo repository.ProgressionRepository
	streakRepo      repository.StreakRepository
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		publisher:       &testutil.MockPublisher{},
		applicationRepo: repository.NewApplicationRepository(),
		goalRepo:        repository.NewGoalRepository(),
		unlockedRepo:    repository.NewUnlockedAchievementRepository(),
		progressionRepo: repository.NewProgressionRepository(),
		streakRepo:      repository.NewStreakRepository(),
	}

	catalog := achievement.DefaultCatalog()
	collector := achievement.NewCollector(f.applicationRepo, f.goalRepo)
	aggregator := achievement.NewAggregator(catalog, f.unlockedRepo, f.progressionRepo, nil)
	f.engine = achievement.NewEngine(
		collector, catalog, aggregator, f.unlockedRepo, f.streakRepo, f.publisher)

	return f
}

func (f *engineFixture) applyAt(ctx context.Context, t *testing.T, userID string, at time.Time) {
	t.Helper()
	_, err := testutil.SampleApplication(ctx, &entity.Application{
		UserID:    userID,
		AppliedAt: at,
	})
	require.NoError(t, err)
}

func afternoon(day int) time.Time {
	return time.Date(2026, time.March, day, 14, 0, 0, 0, time.UTC)
}

func TestEngineUnlocksExactlyOnce(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	userID := uuid.NewString()

	f.applyAt(ctx, t, userID, afternoon(2))

	events, err := f.engine.Trigger(ctx, userID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "first_application", events[0].AchievementID)
	require.Equal(t, 10, events[0].XPReward)
	require.Len(t, f.publisher.Published, 1)

	// A second cycle over the same records must not unlock or award again.
	events, err = f.engine.Trigger(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, events)
	require.Len(t, f.publisher.Published, 1)

	progression, err := f.progressionRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 10, progression.TotalXP)
	require.Equal(t, 1, progression.Level)
	require.Equal(t, 1, progression.UnlockedCount)
}

func TestEngineMilestoneChain(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	userID := uuid.NewString()

	for i := 0; i < 100; i++ {
		f.applyAt(ctx, t, userID, afternoon(2))
	}

	events, err := f.engine.Trigger(ctx, userID)
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.AchievementID)
	}
	require.Equal(t, []string{
		"first_application",
		"ten_applications",
		"fifty_applications",
		"hundred_applications",
	}, ids)

	progression, err := f.progressionRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 185, progression.TotalXP)
	require.Equal(t, 2, progression.Level)
	require.Equal(t, 4, progression.UnlockedCount)

	// Re-running over the same hundred applications changes nothing.
	events, err = f.engine.Trigger(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, events)

	progression, err = f.progressionRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 185, progression.TotalXP)
}

func TestEngineMilestonesAcrossCycles(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	userID := uuid.NewString()

	milestones := []struct {
		count int
		id    string
	}{
		{1, "first_application"},
		{10, "ten_applications"},
		{50, "fifty_applications"},
		{100, "hundred_applications"},
	}

	total := 0
	for _, milestone := range milestones {
		for total < milestone.count {
			f.applyAt(ctx, t, userID, afternoon(2))
			total++
		}

		events, err := f.engine.Trigger(ctx, userID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, milestone.id, events[0].AchievementID)

		// Triggering again at the same count unlocks nothing more.
		events, err = f.engine.Trigger(ctx, userID)
		require.NoError(t, err)
		require.Empty(t, events)
	}

	progression, err := f.progressionRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 185, progression.TotalXP)
	require.Equal(t, 2, progression.Level)
	require.Equal(t, 4, progression.UnlockedCount)
}

func TestEngineStreakUnlockAndPersistence(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	userID := uuid.NewString()

	f.applyAt(ctx, t, userID, afternoon(2))
	f.applyAt(ctx, t, userID, afternoon(3))
	f.applyAt(ctx, t, userID, afternoon(4))

	events, err := f.engine.Trigger(ctx, userID)
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.AchievementID)
	}
	require.Contains(t, ids, "first_application")
	require.Contains(t, ids, "streak_three")

	streak, err := f.streakRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 3, streak.DailyStreak)
	require.Equal(t, 3, streak.LongestStreak)
	require.True(t, streak.LastActivityDate.Valid)
	require.True(t, streak.LastActivityDate.Time.Equal(dateutil.Day(afternoon(4), time.UTC)))
	require.True(t, streak.StreakStartDate.Time.Equal(dateutil.Day(afternoon(2), time.UTC)))
}

func TestEngineTimeOfDayUnlocks(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	userID := uuid.NewString()

	f.applyAt(ctx, t, userID, time.Date(2026, time.March, 2, 7, 30, 0, 0, time.UTC))
	f.applyAt(ctx, t, userID, time.Date(2026, time.March, 2, 22, 15, 0, 0, time.UTC))

	events, err := f.engine.Trigger(ctx, userID)
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.AchievementID)
	}
	require.Contains(t, ids, "early_bird")
	require.Contains(t, ids, "night_owl")
}

func TestEngineGoalUnlocks(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	userID := uuid.NewString()

	f.applyAt(ctx, t, userID, afternoon(2))

	now := time.Now().UTC()
	_, err := testutil.SampleGoal(ctx, &entity.Goal{
		UserID:      userID,
		Period:      entity.GoalWeekly,
		PeriodValue: dateutil.CurrentWeekValue(now),
		Target:      2,
		Progress:    4,
	})
	require.NoError(t, err)

	_, err = testutil.SampleGoal(ctx, &entity.Goal{
		UserID:      userID,
		Period:      entity.GoalMonthly,
		PeriodValue: dateutil.CurrentMonthValue(now),
		Target:      10,
		Progress:    10,
	})
	require.NoError(t, err)

	events, err := f.engine.Trigger(ctx, userID)
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.AchievementID)
	}
	require.Contains(t, ids, "weekly_goal")
	require.Contains(t, ids, "monthly_goal")
	require.Contains(t, ids, "weekly_overachiever")
}

func TestEngineSkipsUnknownLedgerRows(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	userID := uuid.NewString()

	// A row left behind by a retired achievement contributes nothing.
	inserted, err := f.unlockedRepo.CreateIfNotExists(ctx, &entity.UnlockedAchievement{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        userID,
		AchievementID: "retired_achievement",
		UnlockedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.True(t, inserted)

	f.applyAt(ctx, t, userID, afternoon(2))

	_, err = f.engine.Trigger(ctx, userID)
	require.NoError(t, err)

	progression, err := f.progressionRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 10, progression.TotalXP)
	require.Equal(t, 1, progression.UnlockedCount)
}

func TestEngineAbortsWhenFactsUnavailable(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	userID := uuid.NewString()

	require.NoError(t, xcontext.DB(ctx).Migrator().DropTable(&entity.Application{}))

	_, err := f.engine.Trigger(ctx, userID)
	require.ErrorIs(t, err, achievement.ErrFactCollection)

	// An aborted cycle writes nothing.
	_, err = f.unlockedRepo.GetAllByUserID(ctx, userID)
	require.NoError(t, err)
	_, err = f.progressionRepo.GetByUserID(ctx, userID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
