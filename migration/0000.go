package migration

import (
	"context"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/pkg/xcontext"
)

// migrate0000 creates the database with the latest schema.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Application{},
		&entity.Goal{},
		&entity.UnlockedAchievement{},
		&entity.Progression{},
		&entity.Streak{},
		&entity.Migration{},
	)
}
