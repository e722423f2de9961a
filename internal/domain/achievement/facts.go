package achievement

import (
	"context"
	"errors"
	"time"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/dateutil"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Facts is the per-user summary the evaluator matches definitions against.
// It is recomputed from the authoritative records on every cycle and never
// cached.
type Facts struct {
	ApplicationCount int
	InterviewCount   int
	OfferCount       int
	RemoteCount      int

	CoverLetterCount   int
	ResumeCount        int
	NoteCount          int
	TargetCompanyCount int

	DailyStreak int

	WeeklyGoalMet      bool
	MonthlyGoalMet     bool
	WeeklyOverachieved bool

	EarlyBirdApplication bool
	NightOwlApplication  bool

	// EarliestApplicationHour and LatestApplicationHour are the extreme
	// local submission hours over all applications; the time-of-day
	// requirements test against them.
	EarliestApplicationHour int
	LatestApplicationHour   int
}

type Collector struct {
	applicationRepo repository.ApplicationRepository
	goalRepo        repository.GoalRepository
}

func NewCollector(
	applicationRepo repository.ApplicationRepository,
	goalRepo repository.GoalRepository,
) *Collector {
	return &Collector{
		applicationRepo: applicationRepo,
		goalRepo:        goalRepo,
	}
}

// Collect derives the user's facts and streak from the application and goal
// records. Any failure here aborts the cycle before a single write happens.
func (c *Collector) Collect(ctx context.Context, userID string) (Facts, StreakResult, error) {
	applications, err := c.applicationRepo.GetListByUserID(ctx, userID)
	if err != nil {
		return Facts{}, StreakResult{}, err
	}

	engineCfg := xcontext.Configs(ctx).Engine
	loc := engineCfg.Location()

	facts := Facts{
		EarliestApplicationHour: 24,
		LatestApplicationHour:   -1,
	}

	targetCompanies := map[string]struct{}{}
	activityDays := make([]time.Time, 0, len(applications))

	for _, application := range applications {
		facts.ApplicationCount++

		switch application.Status {
		case entity.ApplicationInterview:
			facts.InterviewCount++
		case entity.ApplicationOffer:
			facts.OfferCount++
		}

		if application.Type == entity.ApplicationRemote {
			facts.RemoteCount++
		}

		if application.HasCoverLetter {
			facts.CoverLetterCount++
		}
		if application.HasResume {
			facts.ResumeCount++
		}
		if application.HasNotes {
			facts.NoteCount++
		}

		if application.IsTargetCompany {
			targetCompanies[application.CompanyName] = struct{}{}
		}

		hour := application.AppliedAt.In(loc).Hour()
		if hour < facts.EarliestApplicationHour {
			facts.EarliestApplicationHour = hour
		}
		if hour > facts.LatestApplicationHour {
			facts.LatestApplicationHour = hour
		}

		activityDays = append(activityDays, dateutil.Day(application.AppliedAt, loc))
	}

	facts.TargetCompanyCount = len(targetCompanies)
	facts.EarlyBirdApplication = facts.ApplicationCount > 0 &&
		facts.EarliestApplicationHour < engineCfg.EarlyBirdHour
	facts.NightOwlApplication = facts.ApplicationCount > 0 &&
		facts.LatestApplicationHour >= engineCfg.NightOwlHour

	streak := CalculateStreak(activityDays)
	facts.DailyStreak = streak.Current

	now := time.Now().In(loc)
	weekly, err := c.currentGoal(ctx, userID, entity.GoalWeekly, dateutil.CurrentWeekValue(now))
	if err != nil {
		return Facts{}, StreakResult{}, err
	}

	monthly, err := c.currentGoal(ctx, userID, entity.GoalMonthly, dateutil.CurrentMonthValue(now))
	if err != nil {
		return Facts{}, StreakResult{}, err
	}

	if weekly != nil {
		facts.WeeklyGoalMet = weekly.Met()
		facts.WeeklyOverachieved = weekly.Overachieved()
	}
	if monthly != nil {
		facts.MonthlyGoalMet = monthly.Met()
	}

	return facts, streak, nil
}

func (c *Collector) currentGoal(
	ctx context.Context, userID string, period entity.GoalPeriod, periodValue string,
) (*entity.Goal, error) {
	goal, err := c.goalRepo.Get(ctx, userID, period, periodValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return goal, nil
}
