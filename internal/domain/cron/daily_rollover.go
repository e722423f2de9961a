package cron

import (
	"context"
	"time"

	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/dateutil"
	"github.com/jobtrackr/backend/pkg/xcontext"
)

// DailyRolloverCronJob recomputes recently active users right after midnight.
// Day boundaries change facts without any user action: a streak silently
// breaks, a goal period closes. Without the rollover those changes would
// only surface on the user's next activity.
type DailyRolloverCronJob struct {
	engine          *achievement.Engine
	applicationRepo repository.ApplicationRepository
	location        *time.Location
}

func NewDailyRolloverCronJob(
	ctx context.Context,
	engine *achievement.Engine,
	applicationRepo repository.ApplicationRepository,
) *DailyRolloverCronJob {
	engineCfg := xcontext.Configs(ctx).Engine
	return &DailyRolloverCronJob{
		engine:          engine,
		applicationRepo: applicationRepo,
		location:        engineCfg.Location(),
	}
}

func (job *DailyRolloverCronJob) Do(ctx context.Context) {
	engineCfg := xcontext.Configs(ctx).Engine
	since := time.Now().Add(-engineCfg.RolloverLookback)

	userIDs, err := job.applicationRepo.GetActiveUserIDs(ctx, since)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active users for rollover: %v", err)
		return
	}

	for _, userID := range userIDs {
		if _, err := job.engine.Trigger(ctx, userID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot roll over user %s: %v", userID, err)
		}
	}
}

func (job *DailyRolloverCronJob) RunNow() bool {
	return false
}

func (job *DailyRolloverCronJob) Next() time.Time {
	return dateutil.NextMidnight(time.Now(), job.location)
}
