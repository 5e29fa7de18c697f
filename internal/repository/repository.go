package repository

import (
	"context"
	"time"

	"wolfpack/fitness-hub/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
// Point awards and privacy updates are repository operations so the
// level invariant is maintained under the store's write lock.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error) // ErrDuplicate on username collision
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.User, error)
	UpdateQRCode(ctx context.Context, userID int64, qrCode string) (*domain.User, error)
	AddPoints(ctx context.Context, userID int64, points int) (*domain.User, error)
	UpdatePrivacy(ctx context.Context, userID int64, settings domain.PrivacySettings) (*domain.User, error)
	UpdateProfilePicture(ctx context.Context, userID int64, objectKey string) (*domain.User, error)
	// Leaderboard returns the top users by points, excluding anyone who
	// opted out of the leaderboard. Ties keep insertion order.
	Leaderboard(ctx context.Context, limit int) ([]domain.User, error)
}

// ApparelRepository defines the interface for interacting with apparel data.
type ApparelRepository interface {
	Create(ctx context.Context, apparel *domain.Apparel) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Apparel, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Apparel, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.Apparel, error)
	UpdateQRCode(ctx context.Context, apparelID int64, qrCode string) (*domain.Apparel, error)
	// RecordUsage applies one workout's usage to the garment's aggregates
	// and smoothed performance rating.
	RecordUsage(ctx context.Context, apparelID int64, duration, calories int, now time.Time) (*domain.Apparel, error)
	MostUsed(ctx context.Context, userID int64, limit int) ([]domain.Apparel, error)
	BestPerforming(ctx context.Context, userID int64, limit int) ([]domain.Apparel, error)
}

// WorkoutRepository defines the interface for interacting with workout data.
// Workouts are immutable; there are no update or delete operations.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (int64, error)
	// GetByUserID returns the user's workouts newest first. limit <= 0
	// returns all of them.
	GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Workout, error)
	GetByApparelID(ctx context.Context, apparelID int64, limit int) ([]domain.Workout, error)
}

// AchievementRepository covers the global achievement catalog and per-user
// progress. Unlock and UpdateProgress report whether the completion
// transition happened during the call so callers can award the one-time
// point bonus.
type AchievementRepository interface {
	CreateAchievement(ctx context.Context, achievement *domain.Achievement) (int64, error)
	GetAchievements(ctx context.Context) ([]domain.Achievement, error)
	GetAchievementByName(ctx context.Context, name string) (*domain.Achievement, error)
	GetUserAchievements(ctx context.Context, userID int64) ([]domain.UserAchievement, error)
	// Unlock jumps progress to 100 and completes the achievement.
	Unlock(ctx context.Context, userID, achievementID int64, now time.Time) (*domain.UserAchievement, bool, error)
	// UpdateProgress applies a monotonic progress update; submitting less
	// than the stored progress is a no-op returning the existing record.
	UpdateProgress(ctx context.Context, userID, achievementID int64, progress int, now time.Time) (*domain.UserAchievement, bool, error)
}

// ChallengeRepository covers the challenge catalog and per-user
// participation.
type ChallengeRepository interface {
	CreateChallenge(ctx context.Context, challenge *domain.Challenge) (int64, error)
	// GetChallenges returns the catalog sorted by start date.
	GetChallenges(ctx context.Context) ([]domain.Challenge, error)
	GetChallengeByID(ctx context.Context, id int64) (*domain.Challenge, error)
	GetUserChallenges(ctx context.Context, userID int64) ([]domain.UserChallenge, error)
	// Join is idempotent: joining an already-joined challenge returns the
	// existing record unchanged.
	Join(ctx context.Context, userID, challengeID int64, now time.Time) (*domain.UserChallenge, error)
	// UpdateProgress applies a monotonic progress update. ErrNotFound when
	// the user has not joined the challenge.
	UpdateProgress(ctx context.Context, userID, challengeID int64, progress int) (*domain.UserChallenge, bool, error)
}

// IntegrationRepository tracks third-party app connections.
type IntegrationRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]domain.IntegratedApp, error)
	// Connect creates or overwrites the connection row for (user, app).
	Connect(ctx context.Context, userID int64, appName, accessToken, refreshToken string, now time.Time) (*domain.IntegratedApp, error)
	// Disconnect clears tokens and flips connected off, keeping the row.
	// Disconnecting an app that was never connected is a no-op.
	Disconnect(ctx context.Context, userID int64, appName string) error
}

// PreferenceRepository stores the one-per-user preference record.
type PreferenceRepository interface {
	Get(ctx context.Context, userID int64) (*domain.UserPreferences, error)
	Save(ctx context.Context, prefs *domain.UserPreferences) error // wholesale upsert
}

// RecommendationRepository stores generated workout plans.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.WorkoutRecommendation) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkoutRecommendation, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.WorkoutRecommendation, error)
	// MarkCompleted flips IsCompleted on; completing an already-completed
	// recommendation returns it unchanged.
	MarkCompleted(ctx context.Context, id int64) (*domain.WorkoutRecommendation, error)
}
