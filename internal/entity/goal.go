package entity

import "github.com/jobtrackr/backend/pkg/enum"

type GoalPeriod string

var (
	GoalWeekly  = enum.New(GoalPeriod("weekly"))
	GoalMonthly = enum.New(GoalPeriod("monthly"))
)

// Goal tracks an application target for one period. PeriodValue pins the
// concrete week or month, for example "week/34/2026".
type Goal struct {
	Base

	UserID      string `gorm:"index:idx_goals_user_period,unique"`
	Period      GoalPeriod
	PeriodValue string `gorm:"index:idx_goals_user_period,unique"`

	Target   int
	Progress int
}

// Met reports whether the goal target was reached.
func (g Goal) Met() bool {
	return g.Target > 0 && g.Progress >= g.Target
}

// Overachieved reports whether progress reached twice the target.
func (g Goal) Overachieved() bool {
	return g.Target > 0 && g.Progress >= 2*g.Target
}
