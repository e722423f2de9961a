package achievement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/internal/model"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/pubsub"
	"github.com/jobtrackr/backend/pkg/xcontext"
)

// ErrFactCollection marks a cycle aborted before any write because the
// user's records could not be read.
var ErrFactCollection = errors.New("cannot collect facts")

// Engine runs one full recomputation cycle per trigger. A cycle derives the
// user's facts from scratch, unlocks whatever became eligible, and rebuilds
// the progression totals. Cycles are safe to re-run and safe to run
// concurrently for the same user; the ledger's uniqueness constraint decides
// every race.
type Engine struct {
	collector  *Collector
	catalog    *Catalog
	aggregator *Aggregator

	unlockedRepo repository.UnlockedAchievementRepository
	streakRepo   repository.StreakRepository

	publisher pubsub.Publisher
}

func NewEngine(
	collector *Collector,
	catalog *Catalog,
	aggregator *Aggregator,
	unlockedRepo repository.UnlockedAchievementRepository,
	streakRepo repository.StreakRepository,
	publisher pubsub.Publisher,
) *Engine {
	return &Engine{
		collector:    collector,
		catalog:      catalog,
		aggregator:   aggregator,
		unlockedRepo: unlockedRepo,
		streakRepo:   streakRepo,
		publisher:    publisher,
	}
}

// Trigger runs one cycle for the user and returns the unlocks this cycle
// won. Unlocks another concurrent cycle won first are silently absent from
// the result.
func (e *Engine) Trigger(ctx context.Context, userID string) ([]model.UnlockEvent, error) {
	facts, streak, err := e.collector.Collect(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w for user %s: %v", ErrFactCollection, userID, err)
	}

	// The streak row is display state, not an unlock input; a failed write
	// must not abort the cycle.
	if err := e.storeStreak(ctx, userID, streak); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot store streak for user %s: %v", userID, err)
	}

	unlocks, err := e.unlockedRepo.GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked := make(map[string]struct{}, len(unlocks))
	for _, unlock := range unlocks {
		unlocked[unlock.AchievementID] = struct{}{}
	}

	var events []model.UnlockEvent
	for _, definition := range Evaluate(e.catalog, facts, unlocked) {
		unlockedAt := time.Now()
		inserted, err := e.unlockedRepo.CreateIfNotExists(ctx, &entity.UnlockedAchievement{
			Base:          entity.Base{ID: uuid.NewString()},
			UserID:        userID,
			AchievementID: definition.ID,
			UnlockedAt:    unlockedAt,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf(
				"Cannot record unlock of %s for user %s: %v", definition.ID, userID, err)
			continue
		}

		// Lost the race to another cycle; that cycle owns the event.
		if !inserted {
			continue
		}

		if err := e.aggregator.ApplyUnlock(ctx, userID, definition.XP); err != nil {
			// The final recompute below rebuilds the totals anyway.
			xcontext.Logger(ctx).Warnf(
				"Cannot apply unlock of %s for user %s: %v", definition.ID, userID, err)
		}

		events = append(events, model.UnlockEvent{
			UserID:        userID,
			AchievementID: definition.ID,
			Name:          definition.Name,
			XPReward:      definition.XP,
			UnlockedAt:    unlockedAt,
		})
	}

	if _, err := e.aggregator.Recompute(ctx, userID); err != nil {
		return nil, err
	}

	e.publishUnlocks(ctx, events)
	return events, nil
}

func (e *Engine) storeStreak(ctx context.Context, userID string, streak StreakResult) error {
	row := &entity.Streak{
		UserID:        userID,
		DailyStreak:   streak.Current,
		LongestStreak: streak.Longest,
	}

	if streak.Current > 0 {
		row.LastActivityDate = sql.NullTime{Time: streak.LastActivity, Valid: true}
		row.StreakStartDate = sql.NullTime{Time: streak.StreakStart, Valid: true}
	}

	return e.streakRepo.Upsert(ctx, row)
}

func (e *Engine) publishUnlocks(ctx context.Context, events []model.UnlockEvent) {
	if e.publisher == nil || len(events) == 0 {
		return
	}

	topic := xcontext.Configs(ctx).Engine.UnlockTopic
	for _, event := range events {
		msg, err := json.Marshal(event)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal unlock event: %v", err)
			continue
		}

		err = e.publisher.Publish(ctx, topic, &pubsub.Pack{
			Key: []byte(event.UserID),
			Msg: msg,
		})
		if err != nil {
			// Delivery is best effort; the ledger row already exists and the
			// notification flag stays unset for a later sweep.
			xcontext.Logger(ctx).Errorf(
				"Cannot publish unlock of %s for user %s: %v",
				event.AchievementID, event.UserID, err)
		}
	}
}
