// Package seed populates the global achievement and challenge catalogs.
// Seeding runs once at startup and only writes when the catalog is empty,
// so restarts against a persistent store never duplicate entries.
package seed

import (
	"context"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"

	"go.uber.org/zap"
)

// Achievements seeds the achievement catalog if it is empty.
func Achievements(ctx context.Context, repo repository.AchievementRepository, logger *zap.Logger) error {
	existing, err := repo.GetAchievements(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	catalog := []domain.Achievement{
		{
			Name:        domain.AchievementAlphaConsistency,
			Description: "Complete workouts 5 days in a row",
			Criteria:    "5 consecutive days of workouts",
			Icon:        "award",
			Color:       "amber",
		},
		{
			Name:        domain.AchievementPowerSurge,
			Description: "Burn 10,000 calories in a month",
			Criteria:    "10000 calories burned",
			Icon:        "zap",
			Color:       "blue",
		},
		{
			Name:        "Pack Leader",
			Description: "Invite 5 friends to join your pack",
			Criteria:    "5 friends invited",
			Icon:        "users",
			Color:       "slate",
		},
	}

	for i := range catalog {
		if _, err := repo.CreateAchievement(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	logger.Info("seeded achievement catalog", zap.Int("count", len(catalog)))
	return nil
}

// Challenges seeds the challenge catalog if it is empty. Windows are
// anchored to the current time so the catalog always contains one upcoming
// and two active challenges on a fresh store.
func Challenges(ctx context.Context, repo repository.ChallengeRepository, logger *zap.Logger) error {
	existing, err := repo.GetChallenges(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	threeDaysLater := now.AddDate(0, 0, 3)
	thirtyDaysLater := threeDaysLater.AddDate(0, 0, 30)

	catalog := []domain.Challenge{
		{
			Name:        "30-Day Strength Builder",
			Description: "Build strength and transform your body with our 30-day progressive program designed for all fitness levels.",
			StartDate:   threeDaysLater,
			EndDate:     thirtyDaysLater,
			Image:       "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b",
			Type:        "solo",
			Criteria:    "Complete 30 strength workouts",
		},
		{
			Name:        "Alpha Cardio Challenge",
			Description: "Push your limits with high-intensity cardio sessions designed to improve endurance and burn maximum calories.",
			StartDate:   now,
			EndDate:     thirtyDaysLater,
			Image:       "https://images.unsplash.com/photo-1574680096145-d05b474e2155",
			Type:        "featured",
			Criteria:    "Complete 20 cardio workouts",
		},
		{
			Name:        "Pack Relay Competition",
			Description: "Join with your pack to compete in our community-wide relay challenge. Earn points together and rise up the leaderboard.",
			StartDate:   now,
			EndDate:     thirtyDaysLater,
			Image:       "https://images.unsplash.com/photo-1515238152791-8216bfdf89a7",
			Type:        "team",
			Criteria:    "Collectively complete 100 workouts",
		},
	}

	for i := range catalog {
		if _, err := repo.CreateChallenge(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	logger.Info("seeded challenge catalog", zap.Int("count", len(catalog)))
	return nil
}
