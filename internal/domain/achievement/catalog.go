package achievement

import (
	"github.com/jobtrackr/backend/pkg/enum"
	"golang.org/x/exp/slices"
)

type Category string

var (
	CategoryMilestone = enum.New(Category("milestone"))
	CategoryStreak    = enum.New(Category("streak"))
	CategoryGoal      = enum.New(Category("goal"))
	CategoryTime      = enum.New(Category("time"))
	CategoryQuality   = enum.New(Category("quality"))
	CategorySpecial   = enum.New(Category("special"))
)

var categoryRank = map[Category]int{
	CategoryMilestone: 0,
	CategoryStreak:    1,
	CategoryGoal:      2,
	CategoryTime:      3,
	CategoryQuality:   4,
	CategorySpecial:   5,
}

type Tier string

var (
	TierBronze    = enum.New(Tier("bronze"))
	TierSilver    = enum.New(Tier("silver"))
	TierGold      = enum.New(Tier("gold"))
	TierPlatinum  = enum.New(Tier("platinum"))
	TierDiamond   = enum.New(Tier("diamond"))
	TierLegendary = enum.New(Tier("legendary"))
)

var tierRank = map[Tier]int{
	TierBronze:    0,
	TierSilver:    1,
	TierGold:      2,
	TierPlatinum:  3,
	TierDiamond:   4,
	TierLegendary: 5,
}

type Rarity string

var (
	RarityCommon    = enum.New(Rarity("common"))
	RarityUncommon  = enum.New(Rarity("uncommon"))
	RarityRare      = enum.New(Rarity("rare"))
	RarityEpic      = enum.New(Rarity("epic"))
	RarityLegendary = enum.New(Rarity("legendary"))
)

// Definition describes one achievement. Definitions are immutable and never
// vary per user; changing the catalog is a deployment, not an API call.
type Definition struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Tier        Tier
	Rarity      Rarity
	XP          int

	// Requirements compose with AND: all of them must hold.
	Requirements []Requirement
}

// Eligible reports whether every requirement of the definition holds for the
// given facts.
func (d Definition) Eligible(facts Facts) bool {
	for _, requirement := range d.Requirements {
		if !requirement.Satisfied(facts) {
			return false
		}
	}

	return len(d.Requirements) > 0
}

// Catalog is the readonly registry of achievement definitions, built once at
// startup.
type Catalog struct {
	byID    map[string]Definition
	ordered []Definition
}

func NewCatalog(definitions []Definition) *Catalog {
	ordered := make([]Definition, len(definitions))
	copy(ordered, definitions)

	slices.SortStableFunc(ordered, func(a, b Definition) bool {
		if categoryRank[a.Category] != categoryRank[b.Category] {
			return categoryRank[a.Category] < categoryRank[b.Category]
		}
		if tierRank[a.Tier] != tierRank[b.Tier] {
			return tierRank[a.Tier] < tierRank[b.Tier]
		}
		if a.XP != b.XP {
			return a.XP < b.XP
		}
		return a.ID < b.ID
	})

	byID := make(map[string]Definition, len(ordered))
	for _, definition := range ordered {
		byID[definition.ID] = definition
	}

	return &Catalog{byID: byID, ordered: ordered}
}

func (c *Catalog) Get(id string) (Definition, bool) {
	definition, ok := c.byID[id]
	return definition, ok
}

// All returns every definition ordered by (category, tier, xp, id). The
// order is stable across calls; the evaluator and the notification stream
// rely on it.
func (c *Catalog) All() []Definition {
	return c.ordered
}

func (c *Catalog) Len() int {
	return len(c.ordered)
}

// DefaultCatalog is the shipped achievement set.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Definition{
		{
			ID:          "first_application",
			Name:        "First Step",
			Description: "Submit your first job application.",
			Category:    CategoryMilestone,
			Tier:        TierBronze,
			Rarity:      RarityCommon,
			XP:          10,
			Requirements: []Requirement{
				ApplicationCountAtLeast{N: 1},
			},
		},
		{
			ID:          "ten_applications",
			Name:        "Getting Serious",
			Description: "Submit 10 job applications.",
			Category:    CategoryMilestone,
			Tier:        TierSilver,
			Rarity:      RarityCommon,
			XP:          25,
			Requirements: []Requirement{
				ApplicationCountAtLeast{N: 10},
			},
		},
		{
			ID:          "fifty_applications",
			Name:        "Job Hunter",
			Description: "Submit 50 job applications.",
			Category:    CategoryMilestone,
			Tier:        TierGold,
			Rarity:      RarityUncommon,
			XP:          50,
			Requirements: []Requirement{
				ApplicationCountAtLeast{N: 50},
			},
		},
		{
			ID:          "hundred_applications",
			Name:        "Century Club",
			Description: "Submit 100 job applications.",
			Category:    CategoryMilestone,
			Tier:        TierPlatinum,
			Rarity:      RarityRare,
			XP:          100,
			Requirements: []Requirement{
				ApplicationCountAtLeast{N: 100},
			},
		},
		{
			ID:          "streak_three",
			Name:        "On a Roll",
			Description: "Stay active 3 days in a row.",
			Category:    CategoryStreak,
			Tier:        TierBronze,
			Rarity:      RarityCommon,
			XP:          15,
			Requirements: []Requirement{
				StreakDaysAtLeast{N: 3},
			},
		},
		{
			ID:          "streak_seven",
			Name:        "Week Warrior",
			Description: "Stay active 7 days in a row.",
			Category:    CategoryStreak,
			Tier:        TierSilver,
			Rarity:      RarityUncommon,
			XP:          30,
			Requirements: []Requirement{
				StreakDaysAtLeast{N: 7},
			},
		},
		{
			ID:          "streak_thirty",
			Name:        "Unstoppable",
			Description: "Stay active 30 days in a row.",
			Category:    CategoryStreak,
			Tier:        TierGold,
			Rarity:      RarityEpic,
			XP:          100,
			Requirements: []Requirement{
				StreakDaysAtLeast{N: 30},
			},
		},
		{
			ID:          "weekly_goal",
			Name:        "Goal Getter",
			Description: "Reach your weekly application goal.",
			Category:    CategoryGoal,
			Tier:        TierBronze,
			Rarity:      RarityCommon,
			XP:          20,
			Requirements: []Requirement{
				GoalCompleted{Kind: GoalWeekly},
			},
		},
		{
			ID:          "monthly_goal",
			Name:        "Monthly Master",
			Description: "Reach your monthly application goal.",
			Category:    CategoryGoal,
			Tier:        TierSilver,
			Rarity:      RarityUncommon,
			XP:          40,
			Requirements: []Requirement{
				GoalCompleted{Kind: GoalMonthly},
			},
		},
		{
			ID:          "weekly_overachiever",
			Name:        "Overachiever",
			Description: "Double your weekly application goal.",
			Category:    CategoryGoal,
			Tier:        TierGold,
			Rarity:      RarityRare,
			XP:          60,
			Requirements: []Requirement{
				GoalCompleted{Kind: GoalWeeklyOverachieved},
			},
		},
		{
			ID:          "early_bird",
			Name:        "Early Bird",
			Description: "Apply before 8 in the morning.",
			Category:    CategoryTime,
			Tier:        TierBronze,
			Rarity:      RarityCommon,
			XP:          15,
			Requirements: []Requirement{
				TimeOfDayBefore{Hour: 8},
			},
		},
		{
			ID:          "night_owl",
			Name:        "Night Owl",
			Description: "Apply at 10 in the evening or later.",
			Category:    CategoryTime,
			Tier:        TierBronze,
			Rarity:      RarityCommon,
			XP:          15,
			Requirements: []Requirement{
				TimeOfDayAfter{Hour: 22},
			},
		},
		{
			ID:          "resume_five",
			Name:        "Resume Ready",
			Description: "Attach a resume to 5 applications.",
			Category:    CategoryQuality,
			Tier:        TierBronze,
			Rarity:      RarityCommon,
			XP:          15,
			Requirements: []Requirement{
				AttachmentCountAtLeast{Kind: AttachmentResume, N: 5},
			},
		},
		{
			ID:          "cover_letter_five",
			Name:        "Cover Letter Pro",
			Description: "Attach a cover letter to 5 applications.",
			Category:    CategoryQuality,
			Tier:        TierSilver,
			Rarity:      RarityUncommon,
			XP:          25,
			Requirements: []Requirement{
				AttachmentCountAtLeast{Kind: AttachmentCoverLetter, N: 5},
			},
		},
		{
			ID:          "notes_ten",
			Name:        "Note Taker",
			Description: "Keep notes on 10 applications.",
			Category:    CategoryQuality,
			Tier:        TierSilver,
			Rarity:      RarityUncommon,
			XP:          25,
			Requirements: []Requirement{
				NoteCountAtLeast{N: 10},
			},
		},
		{
			ID:          "remote_ten",
			Name:        "Remote Ranger",
			Description: "Apply to 10 remote positions.",
			Category:    CategorySpecial,
			Tier:        TierSilver,
			Rarity:      RarityUncommon,
			XP:          30,
			Requirements: []Requirement{
				RemoteCountAtLeast{N: 10},
			},
		},
		{
			ID:          "target_five",
			Name:        "Dream Chaser",
			Description: "Apply to 5 of your target companies.",
			Category:    CategorySpecial,
			Tier:        TierGold,
			Rarity:      RarityRare,
			XP:          50,
			Requirements: []Requirement{
				TargetCompanyCountAtLeast{N: 5},
			},
		},
	})
}
