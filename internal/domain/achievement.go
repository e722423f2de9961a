package domain

import (
	"context"

	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/internal/model"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/errorx"
	"github.com/jobtrackr/backend/pkg/xcontext"
)

type AchievementDomain interface {
	GetCatalog(context.Context, *model.GetCatalogRequest) (*model.GetCatalogResponse, error)
	GetMyUnlocked(context.Context, *model.GetMyUnlockedRequest) (*model.GetMyUnlockedResponse, error)
	TriggerRecompute(context.Context, *model.TriggerRecomputeRequest) (*model.TriggerRecomputeResponse, error)
	RepairLedger(context.Context, *model.RepairLedgerRequest) (*model.RepairLedgerResponse, error)
}

type achievementDomain struct {
	catalog    *achievement.Catalog
	engine     *achievement.Engine
	aggregator *achievement.Aggregator

	unlockedRepo repository.UnlockedAchievementRepository
}

func NewAchievementDomain(
	catalog *achievement.Catalog,
	engine *achievement.Engine,
	aggregator *achievement.Aggregator,
	unlockedRepo repository.UnlockedAchievementRepository,
) *achievementDomain {
	return &achievementDomain{
		catalog:      catalog,
		engine:       engine,
		aggregator:   aggregator,
		unlockedRepo: unlockedRepo,
	}
}

func (d *achievementDomain) GetCatalog(
	ctx context.Context, req *model.GetCatalogRequest,
) (*model.GetCatalogResponse, error) {
	definitions := d.catalog.All()
	achievements := make([]model.Achievement, 0, len(definitions))
	for _, definition := range definitions {
		achievements = append(achievements, convertDefinition(definition))
	}

	return &model.GetCatalogResponse{Achievements: achievements}, nil
}

func (d *achievementDomain) GetMyUnlocked(
	ctx context.Context, req *model.GetMyUnlockedRequest,
) (*model.GetMyUnlockedResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allowed an anonymous user")
	}

	unlocks, err := d.unlockedRepo.GetAllByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get unlocked achievements: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.UnlockedAchievement, 0, len(unlocks))
	for _, unlock := range unlocks {
		definition, ok := d.catalog.Get(unlock.AchievementID)
		if !ok {
			xcontext.Logger(ctx).Warnf(
				"Unlocked achievement %s is not in the catalog", unlock.AchievementID)
			continue
		}

		result = append(result, model.UnlockedAchievement{
			Achievement: convertDefinition(definition),
			UnlockedAt:  unlock.UnlockedAt,
			WasNotified: unlock.WasNotified,
		})
	}

	// The response is the notification channel for pending unlocks.
	if err := d.unlockedRepo.MarkNotified(ctx, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mark unlocks as notified: %v", err)
	}

	return &model.GetMyUnlockedResponse{Unlocked: result}, nil
}

func (d *achievementDomain) TriggerRecompute(
	ctx context.Context, req *model.TriggerRecomputeRequest,
) (*model.TriggerRecomputeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allowed an anonymous user")
	}

	events, err := d.engine.Trigger(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot run recompute cycle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.TriggerRecomputeResponse{NewUnlocks: events}, nil
}

// RepairLedger cleans duplicate ledger rows that predate the uniqueness
// constraint, then rebuilds the progression so every achievement counts once.
func (d *achievementDomain) RepairLedger(
	ctx context.Context, req *model.RepairLedgerRequest,
) (*model.RepairLedgerResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found user id")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	removed, err := d.unlockedRepo.Dedupe(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot dedupe ledger: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.aggregator.Recompute(ctx, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recompute progression: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RepairLedgerResponse{RemovedRows: removed}, nil
}

func convertDefinition(definition achievement.Definition) model.Achievement {
	return model.Achievement{
		ID:          definition.ID,
		Name:        definition.Name,
		Description: definition.Description,
		Category:    string(definition.Category),
		Tier:        string(definition.Tier),
		Rarity:      string(definition.Rarity),
		XP:          definition.XP,
	}
}
