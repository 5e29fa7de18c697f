package service

import (
	"context"
	"errors"
	"math"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"

	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrApparelNotFound        = errors.New("apparel not found")
	ErrForbiddenApparelAccess = errors.New("apparel belongs to a different user")
)

// WorkoutInput is the caller-supplied portion of a workout.
type WorkoutInput struct {
	Type      string
	Duration  int // minutes
	Calories  int
	Notes     string
	ApparelID *int64
}

// WorkoutService owns the core write transaction: logging a workout awards
// points, updates the tagged garment's aggregates and re-evaluates the
// user's achievements, all within the same call.
type WorkoutService interface {
	Create(ctx context.Context, userID int64, input WorkoutInput) (*domain.Workout, error)
	List(ctx context.Context, userID int64, limit int) ([]domain.Workout, error)
	Stats(ctx context.Context, userID int64) (*domain.WorkoutStats, error)
	ListByApparel(ctx context.Context, userID, apparelID int64, limit int) ([]domain.Workout, error)
}

type workoutService struct {
	userRepo        repository.UserRepository
	apparelRepo     repository.ApparelRepository
	workoutRepo     repository.WorkoutRepository
	achievementRepo repository.AchievementRepository
	logger          *zap.Logger
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	userRepo repository.UserRepository,
	apparelRepo repository.ApparelRepository,
	workoutRepo repository.WorkoutRepository,
	achievementRepo repository.AchievementRepository,
	logger *zap.Logger,
) WorkoutService {
	return &workoutService{
		userRepo:        userRepo,
		apparelRepo:     apparelRepo,
		workoutRepo:     workoutRepo,
		achievementRepo: achievementRepo,
		logger:          logger,
	}
}

func (s *workoutService) Create(ctx context.Context, userID int64, input WorkoutInput) (*domain.Workout, error) {
	if input.Type == "" || input.Duration <= 0 || input.Calories < 0 {
		return nil, ErrValidation
	}

	// Resolve the garment before writing anything so a bad reference fails
	// the whole creation with no partial side effects.
	if input.ApparelID != nil {
		apparel, err := s.apparelRepo.GetByID(ctx, *input.ApparelID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrApparelNotFound
			}
			return nil, err
		}
		if apparel.UserID != userID {
			return nil, ErrForbiddenApparelAccess
		}
	}

	now := time.Now()
	workout := &domain.Workout{
		UserID:    userID,
		ApparelID: input.ApparelID,
		Type:      input.Type,
		Duration:  input.Duration,
		Calories:  input.Calories,
		Date:      now,
		Progress:  domain.WorkoutProgress(input.Duration),
		Notes:     input.Notes,
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.AddPoints(ctx, userID, domain.PointsForWorkout(input.Duration)); err != nil {
		return nil, err
	}

	if input.ApparelID != nil {
		if _, err := s.apparelRepo.RecordUsage(ctx, *input.ApparelID, input.Duration, input.Calories, now); err != nil {
			return nil, err
		}
	}

	if err := s.evaluateAchievements(ctx, userID, now); err != nil {
		return nil, err
	}

	return workout, nil
}

// evaluateAchievements re-checks the acting user's progress after a workout
// was stored. Completion bonuses are awarded exactly once, on the
// completion transition the repositories report.
func (s *workoutService) evaluateAchievements(ctx context.Context, userID int64, now time.Time) error {
	workouts, err := s.workoutRepo.GetByUserID(ctx, userID, 0)
	if err != nil {
		return err
	}

	totalCalories := 0
	for _, w := range workouts {
		totalCalories += w.Calories
	}

	if len(workouts) >= domain.ConsistencyWorkoutCount {
		if err := s.unlockByName(ctx, userID, domain.AchievementAlphaConsistency, now); err != nil {
			return err
		}
	}

	return s.updateProgressByName(ctx, userID, domain.AchievementPowerSurge, domain.CalorieProgress(totalCalories), now)
}

func (s *workoutService) unlockByName(ctx context.Context, userID int64, name string, now time.Time) error {
	achievement, err := s.achievementRepo.GetAchievementByName(ctx, name)
	if err != nil {
		// A missing catalog entry means the seed did not run; log and move
		// on rather than failing the workout.
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("achievement missing from catalog", zap.String("name", name))
			return nil
		}
		return err
	}

	_, completedNow, err := s.achievementRepo.Unlock(ctx, userID, achievement.ID, now)
	if err != nil {
		return err
	}
	if completedNow {
		if _, err := s.userRepo.AddPoints(ctx, userID, domain.AchievementPointBonus); err != nil {
			return err
		}
		s.logger.Info("achievement unlocked",
			zap.Int64("userId", userID),
			zap.String("achievement", name))
	}
	return nil
}

func (s *workoutService) updateProgressByName(ctx context.Context, userID int64, name string, progress int, now time.Time) error {
	achievement, err := s.achievementRepo.GetAchievementByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("achievement missing from catalog", zap.String("name", name))
			return nil
		}
		return err
	}

	_, completedNow, err := s.achievementRepo.UpdateProgress(ctx, userID, achievement.ID, progress, now)
	if err != nil {
		return err
	}
	if completedNow {
		if _, err := s.userRepo.AddPoints(ctx, userID, domain.AchievementPointBonus); err != nil {
			return err
		}
		s.logger.Info("achievement unlocked",
			zap.Int64("userId", userID),
			zap.String("achievement", name))
	}
	return nil
}

func (s *workoutService) List(ctx context.Context, userID int64, limit int) ([]domain.Workout, error) {
	return s.workoutRepo.GetByUserID(ctx, userID, limit)
}

func (s *workoutService) Stats(ctx context.Context, userID int64) (*domain.WorkoutStats, error) {
	workouts, err := s.workoutRepo.GetByUserID(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	stats := &domain.WorkoutStats{TotalWorkouts: len(workouts)}
	totalProgress := 0
	for _, w := range workouts {
		stats.TotalCalories += w.Calories
		totalProgress += w.Progress
	}
	if len(workouts) > 0 {
		stats.AvgProgress = int(math.Round(float64(totalProgress) / float64(len(workouts))))
	}
	return stats, nil
}

func (s *workoutService) ListByApparel(ctx context.Context, userID, apparelID int64, limit int) ([]domain.Workout, error) {
	apparel, err := s.apparelRepo.GetByID(ctx, apparelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApparelNotFound
		}
		return nil, err
	}
	if apparel.UserID != userID {
		return nil, ErrForbiddenApparelAccess
	}
	return s.workoutRepo.GetByApparelID(ctx, apparelID, limit)
}
