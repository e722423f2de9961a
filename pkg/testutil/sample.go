package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackr/backend/internal/entity"
	"github.com/jobtrackr/backend/internal/repository"
)

// SampleApplication creates an application with randomized fields, overwritten
// by any non-zero field of init. It returns the stored application.
func SampleApplication(ctx context.Context, init *entity.Application) (entity.Application, error) {
	applicationRepo := repository.NewApplicationRepository()

	sample := &entity.Application{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      uuid.NewString(),
		CompanyName: uuid.NewString(),
		Position:    "Software Engineer",
		Status:      entity.ApplicationApplied,
		Type:        entity.ApplicationOnsite,
		AppliedAt:   time.Date(2026, time.March, 2, 14, 0, 0, 0, time.UTC),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := applicationRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

// SampleGoal creates a goal with randomized fields, overwritten by any
// non-zero field of init.
func SampleGoal(ctx context.Context, init *entity.Goal) (entity.Goal, error) {
	goalRepo := repository.NewGoalRepository()

	sample := &entity.Goal{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      uuid.NewString(),
		Period:      entity.GoalWeekly,
		PeriodValue: "week/10/2026",
		Target:      5,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := goalRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
