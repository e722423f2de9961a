package domain

import (
	"context"
	"errors"

	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/internal/model"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/pkg/errorx"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const maxLeaderBoardLimit = 50

type ProgressionDomain interface {
	GetProgression(context.Context, *model.GetProgressionRequest) (*model.GetProgressionResponse, error)
	GetStreak(context.Context, *model.GetStreakRequest) (*model.GetStreakResponse, error)
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type progressionDomain struct {
	aggregator *achievement.Aggregator

	progressionRepo repository.ProgressionRepository
	streakRepo      repository.StreakRepository
}

func NewProgressionDomain(
	aggregator *achievement.Aggregator,
	progressionRepo repository.ProgressionRepository,
	streakRepo repository.StreakRepository,
) *progressionDomain {
	return &progressionDomain{
		aggregator:      aggregator,
		progressionRepo: progressionRepo,
		streakRepo:      streakRepo,
	}
}

func (d *progressionDomain) GetProgression(
	ctx context.Context, req *model.GetProgressionRequest,
) (*model.GetProgressionResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allowed an anonymous user")
	}

	progression, err := d.aggregator.GetProgression(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get progression: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetProgressionResponse{
		Progression: model.ConvertProgression(progression),
	}, nil
}

func (d *progressionDomain) GetStreak(
	ctx context.Context, req *model.GetStreakRequest,
) (*model.GetStreakResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allowed an anonymous user")
	}

	streak, err := d.streakRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetStreakResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get streak: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetStreakResponse{Streak: model.ConvertStreak(streak)}, nil
}

func (d *progressionDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	if req.Limit == 0 {
		req.Limit = 10
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > maxLeaderBoardLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", maxLeaderBoardLimit)
	}

	filter := &repository.LeaderBoardFilter{Offset: req.Offset, Limit: req.Limit}

	prevRanks := map[string]int{}
	for i, row := range d.progressionRepo.GetPrevLeaderBoard(filter) {
		prevRanks[row.UserID] = req.Offset + i + 1
	}

	page, err := d.progressionRepo.GetLeaderBoard(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := make([]model.LeaderBoardEntry, 0, len(page))
	for i, row := range page {
		entries = append(entries, model.LeaderBoardEntry{
			UserID:       row.UserID,
			TotalXP:      row.TotalXP,
			Level:        row.Level,
			CurrentRank:  req.Offset + i + 1,
			PreviousRank: prevRanks[row.UserID],
		})
	}

	return &model.GetLeaderBoardResponse{LeaderBoard: entries}, nil
}
