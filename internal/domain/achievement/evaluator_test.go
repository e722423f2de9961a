package achievement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateSkipsUnlocked(t *testing.T) {
	catalog := DefaultCatalog()
	facts := Facts{ApplicationCount: 10}

	eligible := Evaluate(catalog, facts, nil)
	ids := definitionIDs(eligible)
	require.Contains(t, ids, "first_application")
	require.Contains(t, ids, "ten_applications")
	require.NotContains(t, ids, "fifty_applications")

	unlocked := map[string]struct{}{"first_application": {}}
	eligible = Evaluate(catalog, facts, unlocked)
	ids = definitionIDs(eligible)
	require.NotContains(t, ids, "first_application")
	require.Contains(t, ids, "ten_applications")
}

func TestEvaluateIsDeterministic(t *testing.T) {
	catalog := DefaultCatalog()
	facts := Facts{
		ApplicationCount:        120,
		RemoteCount:             30,
		CoverLetterCount:        10,
		ResumeCount:             10,
		NoteCount:               15,
		TargetCompanyCount:      7,
		DailyStreak:             31,
		WeeklyGoalMet:           true,
		MonthlyGoalMet:          true,
		WeeklyOverachieved:      true,
		EarliestApplicationHour: 6,
		LatestApplicationHour:   23,
	}

	first := definitionIDs(Evaluate(catalog, facts, nil))
	require.Equal(t, catalog.Len(), len(first))
	for i := 0; i < 10; i++ {
		require.Equal(t, first, definitionIDs(Evaluate(catalog, facts, nil)))
	}
}

func TestEvaluateRequiresAllRequirements(t *testing.T) {
	catalog := NewCatalog([]Definition{
		{
			ID:       "remote_streaker",
			Category: CategorySpecial,
			Tier:     TierGold,
			XP:       40,
			Requirements: []Requirement{
				RemoteCountAtLeast{N: 5},
				StreakDaysAtLeast{N: 3},
			},
		},
	})

	require.Empty(t, Evaluate(catalog, Facts{RemoteCount: 5}, nil))
	require.Empty(t, Evaluate(catalog, Facts{DailyStreak: 3}, nil))
	require.Len(t, Evaluate(catalog, Facts{RemoteCount: 5, DailyStreak: 3}, nil), 1)
}

func TestEvaluateEmptyRequirementsNeverMatch(t *testing.T) {
	catalog := NewCatalog([]Definition{
		{ID: "broken", Category: CategorySpecial, Tier: TierBronze, XP: 5},
	})

	require.Empty(t, Evaluate(catalog, Facts{ApplicationCount: 100}, nil))
}

func TestCatalogOrder(t *testing.T) {
	catalog := DefaultCatalog()
	all := catalog.All()

	lastCategory, lastTier, lastXP := -1, -1, -1
	for _, definition := range all {
		c := categoryRank[definition.Category]
		require.GreaterOrEqual(t, c, lastCategory)
		if c > lastCategory {
			lastTier, lastXP = -1, -1
		}

		tier := tierRank[definition.Tier]
		require.GreaterOrEqual(t, tier, lastTier)
		if tier > lastTier {
			lastXP = -1
		}

		require.GreaterOrEqual(t, definition.XP, lastXP)
		lastCategory, lastTier, lastXP = c, tier, definition.XP
	}
}

func TestTimeOfDayRequirements(t *testing.T) {
	early := TimeOfDayBefore{Hour: 8}
	late := TimeOfDayAfter{Hour: 22}

	require.False(t, early.Satisfied(Facts{EarliestApplicationHour: 24}))
	require.False(t, early.Satisfied(Facts{ApplicationCount: 1, EarliestApplicationHour: 8}))
	require.True(t, early.Satisfied(Facts{ApplicationCount: 1, EarliestApplicationHour: 7}))

	require.False(t, late.Satisfied(Facts{LatestApplicationHour: -1}))
	require.False(t, late.Satisfied(Facts{ApplicationCount: 1, LatestApplicationHour: 21}))
	require.True(t, late.Satisfied(Facts{ApplicationCount: 1, LatestApplicationHour: 22}))
}

func definitionIDs(definitions []Definition) []string {
	ids := make([]string, 0, len(definitions))
	for _, definition := range definitions {
		ids = append(ids, definition.ID)
	}

	return ids
}
