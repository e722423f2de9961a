package achievement

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jobtrackr/backend/internal/model"
	"github.com/jobtrackr/backend/pkg/pubsub"
	"github.com/jobtrackr/backend/pkg/xcontext"
)

type ActivitySubscribeHandler interface {
	Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type activitySubscribeHandler struct {
	engine *Engine
}

func NewActivitySubscribeHandler(engine *Engine) ActivitySubscribeHandler {
	return &activitySubscribeHandler{engine: engine}
}

// Subscribe consumes one activity event. The payload only names the user;
// the cycle re-reads everything from storage, so replays and redeliveries
// are harmless.
func (s *activitySubscribeHandler) Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event model.ActivityEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to unmarshal activity event: %v", err)
		return
	}

	if event.UserID == "" {
		xcontext.Logger(ctx).Warnf("Received an activity event without user id")
		return
	}

	events, err := s.engine.Trigger(ctx, event.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot run cycle for user %s: %v", event.UserID, err)
		return
	}

	if len(events) > 0 {
		xcontext.Logger(ctx).Infof("User %s unlocked %d achievements", event.UserID, len(events))
	}
}
