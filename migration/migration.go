package migration

import (
	"context"
	"errors"
	"time"

	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var migrators = []func(context.Context) error{
	migrate0000,
	migrate0001,
}

// Migrate applies every pending migrator in order. Each one runs in its own
// transaction together with the version bump, so a crash leaves the database
// at a well-defined version.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	current := -1
	var last entity.Migration
	err := xcontext.DB(ctx).Order("version DESC").Take(&last).Error
	if err == nil {
		current = last.Version
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	for version := current + 1; version < len(migrators); version++ {
		txCtx := xcontext.WithDBTransaction(ctx)

		if err := migrators[version](txCtx); err != nil {
			xcontext.WithRollbackDBTransaction(txCtx)
			return err
		}

		record := entity.Migration{Version: version, AppliedAt: time.Now()}
		if err := xcontext.DB(txCtx).Create(&record).Error; err != nil {
			xcontext.WithRollbackDBTransaction(txCtx)
			return err
		}

		xcontext.WithCommitDBTransaction(txCtx)
		xcontext.Logger(ctx).Infof("Applied migration %04d", version)
	}

	return nil
}
