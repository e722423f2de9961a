package achievement

import "github.com/jobtrackr/backend/pkg/enum"

type AttachmentKind string

var (
	AttachmentCoverLetter = enum.New(AttachmentKind("cover_letter"))
	AttachmentResume      = enum.New(AttachmentKind("resume"))
)

type GoalKind string

var (
	GoalWeekly             = enum.New(GoalKind("weekly"))
	GoalMonthly            = enum.New(GoalKind("monthly"))
	GoalWeeklyOverachieved = enum.New(GoalKind("weekly_overachieved"))
)

// Requirement is a closed set of criteria a definition can demand. Every
// variant carries a pure predicate over the collected facts; nothing in the
// engine ever dispatches on an achievement id.
type Requirement interface {
	isRequirement()

	Satisfied(facts Facts) bool
}

type ApplicationCountAtLeast struct {
	N int
}

func (ApplicationCountAtLeast) isRequirement() {}

func (r ApplicationCountAtLeast) Satisfied(facts Facts) bool {
	return facts.ApplicationCount >= r.N
}

type RemoteCountAtLeast struct {
	N int
}

func (RemoteCountAtLeast) isRequirement() {}

func (r RemoteCountAtLeast) Satisfied(facts Facts) bool {
	return facts.RemoteCount >= r.N
}

type AttachmentCountAtLeast struct {
	Kind AttachmentKind
	N    int
}

func (AttachmentCountAtLeast) isRequirement() {}

func (r AttachmentCountAtLeast) Satisfied(facts Facts) bool {
	switch r.Kind {
	case AttachmentCoverLetter:
		return facts.CoverLetterCount >= r.N
	case AttachmentResume:
		return facts.ResumeCount >= r.N
	default:
		return false
	}
}

type NoteCountAtLeast struct {
	N int
}

func (NoteCountAtLeast) isRequirement() {}

func (r NoteCountAtLeast) Satisfied(facts Facts) bool {
	return facts.NoteCount >= r.N
}

type StreakDaysAtLeast struct {
	N int
}

func (StreakDaysAtLeast) isRequirement() {}

func (r StreakDaysAtLeast) Satisfied(facts Facts) bool {
	return facts.DailyStreak >= r.N
}

type GoalCompleted struct {
	Kind GoalKind
}

func (GoalCompleted) isRequirement() {}

func (r GoalCompleted) Satisfied(facts Facts) bool {
	switch r.Kind {
	case GoalWeekly:
		return facts.WeeklyGoalMet
	case GoalMonthly:
		return facts.MonthlyGoalMet
	case GoalWeeklyOverachieved:
		return facts.WeeklyOverachieved
	default:
		return false
	}
}

type TargetCompanyCountAtLeast struct {
	N int
}

func (TargetCompanyCountAtLeast) isRequirement() {}

func (r TargetCompanyCountAtLeast) Satisfied(facts Facts) bool {
	return facts.TargetCompanyCount >= r.N
}

// TimeOfDayBefore holds for users who submitted at least one application
// strictly before Hour (local time in the engine's reference timezone).
type TimeOfDayBefore struct {
	Hour int
}

func (TimeOfDayBefore) isRequirement() {}

func (r TimeOfDayBefore) Satisfied(facts Facts) bool {
	return facts.ApplicationCount > 0 && facts.EarliestApplicationHour < r.Hour
}

// TimeOfDayAfter holds for users who submitted at least one application at
// or after Hour.
type TimeOfDayAfter struct {
	Hour int
}

func (TimeOfDayAfter) isRequirement() {}

func (r TimeOfDayAfter) Satisfied(facts Facts) bool {
	return facts.ApplicationCount > 0 && facts.LatestApplicationHour >= r.Hour
}
