package testutil

import (
	"context"
	"time"

	"github.com/jobtrackr/backend/config"
	"github.com/jobtrackr/backend/migration"
	"github.com/jobtrackr/backend/pkg/logger"
	"github.com/jobtrackr/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Engine: config.EngineConfigs{
			Timezone:            "UTC",
			EarlyBirdHour:       8,
			NightOwlHour:        22,
			ActivityTopic:       "activity-events",
			UnlockTopic:         "unlock-events",
			RolloverLookback:    45 * 24 * time.Hour,
			ProgressionCacheTTL: 10 * time.Minute,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger())
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
