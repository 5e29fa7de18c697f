package service

import (
	"context"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// AchievementService serves the catalog joined with the caller's progress.
type AchievementService interface {
	// ListForUser returns every catalog entry with the user's progress,
	// zero-valued for achievements the user has not started.
	ListForUser(ctx context.Context, userID int64) ([]domain.UserAchievementDetail, error)
}

type achievementService struct {
	achievementRepo repository.AchievementRepository
}

// NewAchievementService creates a new instance of achievementService.
func NewAchievementService(achievementRepo repository.AchievementRepository) AchievementService {
	return &achievementService{achievementRepo: achievementRepo}
}

func (s *achievementService) ListForUser(ctx context.Context, userID int64) ([]domain.UserAchievementDetail, error) {
	catalog, err := s.achievementRepo.GetAchievements(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.achievementRepo.GetUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	byAchievement := make(map[int64]domain.UserAchievement, len(records))
	for _, r := range records {
		byAchievement[r.AchievementID] = r
	}

	details := make([]domain.UserAchievementDetail, 0, len(catalog))
	for _, a := range catalog {
		detail := domain.UserAchievementDetail{Achievement: a}
		if record, ok := byAchievement[a.ID]; ok {
			detail.Progress = record.Progress
			detail.Completed = record.Completed
			detail.DateEarned = record.DateEarned
		}
		details = append(details, detail)
	}
	return details, nil
}
