package achievement_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsAndFlags(t *testing.T) {
	ctx := testutil.MockContext()
	collector := achievement.NewCollector(
		repository.NewApplicationRepository(), repository.NewGoalRepository())
	userID := uuid.NewString()

	apps := []entity.Application{
		{
			UserID:          userID,
			CompanyName:     "acme",
			Status:          entity.ApplicationInterview,
			Type:            entity.ApplicationRemote,
			AppliedAt:       afternoon(2),
			IsTargetCompany: true,
			HasCoverLetter:  true,
			HasResume:       true,
		},
		{
			UserID:          userID,
			CompanyName:     "acme",
			Status:          entity.ApplicationOffer,
			Type:            entity.ApplicationOnsite,
			AppliedAt:       afternoon(3),
			IsTargetCompany: true,
			HasNotes:        true,
		},
		{
			UserID:      userID,
			CompanyName: "initech",
			Status:      entity.ApplicationApplied,
			Type:        entity.ApplicationHybrid,
			AppliedAt:   time.Date(2026, time.March, 4, 7, 0, 0, 0, time.UTC),
		},
	}
	for i := range apps {
		_, err := testutil.SampleApplication(ctx, &apps[i])
		require.NoError(t, err)
	}

	facts, streak, err := collector.Collect(ctx, userID)
	require.NoError(t, err)

	require.Equal(t, 3, facts.ApplicationCount)
	require.Equal(t, 1, facts.InterviewCount)
	require.Equal(t, 1, facts.OfferCount)
	require.Equal(t, 1, facts.RemoteCount)
	require.Equal(t, 1, facts.CoverLetterCount)
	require.Equal(t, 1, facts.ResumeCount)
	require.Equal(t, 1, facts.NoteCount)

	// Two applications to the same flagged company count it once.
	require.Equal(t, 1, facts.TargetCompanyCount)

	require.Equal(t, 3, facts.DailyStreak)
	require.Equal(t, 3, streak.Current)

	require.Equal(t, 7, facts.EarliestApplicationHour)
	require.Equal(t, 14, facts.LatestApplicationHour)
	require.True(t, facts.EarlyBirdApplication)
	require.False(t, facts.NightOwlApplication)

	// No goals exist for the current periods.
	require.False(t, facts.WeeklyGoalMet)
	require.False(t, facts.MonthlyGoalMet)
}

func TestCollectorNoRecords(t *testing.T) {
	ctx := testutil.MockContext()
	collector := achievement.NewCollector(
		repository.NewApplicationRepository(), repository.NewGoalRepository())

	facts, streak, err := collector.Collect(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Zero(t, facts.ApplicationCount)
	require.Zero(t, facts.DailyStreak)
	require.Zero(t, streak.Current)
	require.False(t, facts.EarlyBirdApplication)
	require.False(t, facts.NightOwlApplication)
}
