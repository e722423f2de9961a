package achievement_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/internal/model"
	"github.com/jobtrackr/backend/pkg/pubsub"
	"github.com/jobtrackr/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestActivitySubscribeHandler(t *testing.T) {
	ctx := testutil.MockContext()
	f := newEngineFixture()
	handler := achievement.NewActivitySubscribeHandler(f.engine)
	userID := uuid.NewString()

	f.applyAt(ctx, t, userID, afternoon(2))

	msg, err := json.Marshal(model.ActivityEvent{
		UserID:     userID,
		Type:       "application_created",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	handler.Subscribe(ctx, &pubsub.Pack{Key: []byte(userID), Msg: msg}, time.Now())

	unlocks, err := f.unlockedRepo.GetAllByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	require.Equal(t, "first_application", unlocks[0].AchievementID)

	// Redelivery of the same event changes nothing.
	handler.Subscribe(ctx, &pubsub.Pack{Key: []byte(userID), Msg: msg}, time.Now())

	unlocks, err = f.unlockedRepo.GetAllByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, unlocks, 1)

	// Garbage and anonymous payloads are dropped without a cycle.
	handler.Subscribe(ctx, &pubsub.Pack{Msg: []byte("{not json")}, time.Now())
	handler.Subscribe(ctx, &pubsub.Pack{Msg: []byte(`{"type":"x"}`)}, time.Now())
}
