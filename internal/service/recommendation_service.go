package service

import (
	"context"
	"errors"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRecommendationNotFound  = errors.New("recommendation not found")
	ErrForbiddenRecommendation = errors.New("recommendation belongs to a different user")
)

const defaultRecommendationDuration = 30 // minutes

// calorieMultipliers estimates burn per minute for each workout type.
var calorieMultipliers = map[string]int{
	"strength":    6,
	"cardio":      10,
	"flexibility": 4,
	"hiit":        12,
	"endurance":   9,
	"recovery":    3,
	"balance":     4,
}

const defaultCalorieMultiplier = 8

// workoutTemplate is a fixed plan skeleton for one workout preference.
type workoutTemplate struct {
	title       string
	description string
	exercises   []domain.RecommendedExercise
}

var workoutTemplates = map[string]workoutTemplate{
	"strength": {
		title:       "Strength Builder",
		description: "Compound lifts targeting every major muscle group.",
		exercises: []domain.RecommendedExercise{
			{Name: "Squats", Sets: 4, Reps: 10, RestPeriod: 90, Instruction: "Keep your chest up and drive through your heels."},
			{Name: "Deadlifts", Sets: 4, Reps: 8, RestPeriod: 120, Instruction: "Brace your core and keep the bar close to your body."},
			{Name: "Bench Press", Sets: 4, Reps: 10, RestPeriod: 90, Instruction: "Lower the bar to mid-chest with control."},
			{Name: "Bent-Over Rows", Sets: 3, Reps: 12, RestPeriod: 60, Instruction: "Pull your elbows back and squeeze your shoulder blades."},
			{Name: "Plank", Duration: 60, RestPeriod: 45, Instruction: "Hold a straight line from head to heels."},
		},
	},
	"cardio": {
		title:       "Cardio Blast",
		description: "Steady-state and interval work to raise your aerobic base.",
		exercises: []domain.RecommendedExercise{
			{Name: "Warm-up Jog", Duration: 300, Instruction: "Easy pace, focus on breathing."},
			{Name: "Interval Sprints", Sets: 8, Duration: 30, RestPeriod: 60, Instruction: "Sprint hard, then recover fully between rounds."},
			{Name: "Jump Rope", Duration: 180, RestPeriod: 60, Instruction: "Stay light on your feet."},
			{Name: "Cycling", Duration: 600, Instruction: "Moderate resistance, steady cadence."},
			{Name: "Cool-down Walk", Duration: 300, Instruction: "Bring your heart rate down gradually."},
		},
	},
	"flexibility": {
		title:       "Flexibility Flow",
		description: "A mobility session to lengthen tight muscles and improve range.",
		exercises: []domain.RecommendedExercise{
			{Name: "Cat-Cow Stretch", Duration: 60, Instruction: "Move slowly with your breath."},
			{Name: "Downward Dog", Duration: 60, RestPeriod: 30, Instruction: "Press your heels toward the floor."},
			{Name: "Pigeon Pose", Duration: 90, RestPeriod: 30, Instruction: "Hold each side, breathe into the stretch."},
			{Name: "Hamstring Stretch", Duration: 60, RestPeriod: 30, Instruction: "Keep your back flat as you fold forward."},
			{Name: "Child's Pose", Duration: 90, Instruction: "Relax your shoulders and sink your hips back."},
		},
	},
	"hiit": {
		title:       "HIIT Circuit",
		description: "Short bursts of maximum effort with minimal rest.",
		exercises: []domain.RecommendedExercise{
			{Name: "Burpees", Sets: 4, Duration: 40, RestPeriod: 20, Instruction: "Full extension at the top of every rep."},
			{Name: "Mountain Climbers", Sets: 4, Duration: 40, RestPeriod: 20, Instruction: "Drive your knees fast, hips low."},
			{Name: "Jump Squats", Sets: 4, Duration: 40, RestPeriod: 20, Instruction: "Land softly and go straight into the next rep."},
			{Name: "High Knees", Sets: 4, Duration: 40, RestPeriod: 20, Instruction: "Pump your arms, stay on the balls of your feet."},
			{Name: "Push-ups", Sets: 4, Duration: 40, RestPeriod: 20, Instruction: "Keep your elbows at roughly 45 degrees."},
		},
	},
}

// beginnerTemplate is the fallback when a user has no stored preferences.
var beginnerTemplate = workoutTemplate{
	title:       "Beginner Full Body",
	description: "A gentle full-body session to build the habit.",
	exercises: []domain.RecommendedExercise{
		{Name: "Bodyweight Squats", Sets: 3, Reps: 10, RestPeriod: 60, Instruction: "Sit back like you are reaching for a chair."},
		{Name: "Knee Push-ups", Sets: 3, Reps: 8, RestPeriod: 60, Instruction: "Keep your hips in line with your shoulders."},
		{Name: "Glute Bridges", Sets: 3, Reps: 12, RestPeriod: 45, Instruction: "Squeeze at the top for a second."},
		{Name: "Walking", Duration: 600, Instruction: "Brisk pace, comfortable breathing."},
	},
}

// RecommendationService generates deterministic workout plans from stored
// preferences and apparel performance history. No learning, no randomness.
type RecommendationService interface {
	Generate(ctx context.Context, userID int64) (*domain.WorkoutRecommendation, error)
	List(ctx context.Context, userID int64) ([]domain.WorkoutRecommendation, error)
	Get(ctx context.Context, userID, recommendationID int64) (*domain.WorkoutRecommendation, error)
	// Complete flips IsCompleted on. Completing twice is a no-op.
	Complete(ctx context.Context, userID, recommendationID int64) (*domain.WorkoutRecommendation, error)
}

type recommendationService struct {
	recommendationRepo repository.RecommendationRepository
	preferenceRepo     repository.PreferenceRepository
	apparelRepo        repository.ApparelRepository
}

// NewRecommendationService creates a new instance of recommendationService.
func NewRecommendationService(
	recommendationRepo repository.RecommendationRepository,
	preferenceRepo repository.PreferenceRepository,
	apparelRepo repository.ApparelRepository,
) RecommendationService {
	return &recommendationService{
		recommendationRepo: recommendationRepo,
		preferenceRepo:     preferenceRepo,
		apparelRepo:        apparelRepo,
	}
}

func (s *recommendationService) Generate(ctx context.Context, userID int64) (*domain.WorkoutRecommendation, error) {
	workoutType := ""
	duration := defaultRecommendationDuration
	difficulty := "beginner"

	prefs, err := s.preferenceRepo.Get(ctx, userID)
	switch {
	case err == nil:
		workoutType = prefs.WorkoutPreference
		if prefs.WorkoutDuration > 0 {
			duration = prefs.WorkoutDuration
		}
		if prefs.FitnessLevel != "" {
			difficulty = prefs.FitnessLevel
		}
	case errors.Is(err, repository.ErrNotFound):
		// No preferences yet; the beginner fallback applies.
	default:
		return nil, err
	}

	template, ok := workoutTemplates[workoutType]
	if !ok {
		template = beginnerTemplate
		workoutType = "general"
	}

	multiplier, ok := calorieMultipliers[workoutType]
	if !ok {
		multiplier = defaultCalorieMultiplier
	}

	best, err := s.apparelRepo.BestPerforming(ctx, userID, 3)
	if err != nil {
		return nil, err
	}
	apparelIDs := make([]int64, 0, len(best))
	for _, a := range best {
		apparelIDs = append(apparelIDs, a.ID)
	}

	rec := &domain.WorkoutRecommendation{
		UserID:             userID,
		Title:              template.title,
		Description:        template.description,
		Type:               workoutType,
		Duration:           duration,
		CaloriesBurn:       duration * multiplier,
		Difficulty:         difficulty,
		Exercises:          template.exercises,
		RecommendedApparel: apparelIDs,
		CreatedAt:          time.Now(),
	}
	if _, err := s.recommendationRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recommendationService) List(ctx context.Context, userID int64) ([]domain.WorkoutRecommendation, error) {
	return s.recommendationRepo.GetByUserID(ctx, userID)
}

func (s *recommendationService) Get(ctx context.Context, userID, recommendationID int64) (*domain.WorkoutRecommendation, error) {
	rec, err := s.recommendationRepo.GetByID(ctx, recommendationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrForbiddenRecommendation
	}
	return rec, nil
}

func (s *recommendationService) Complete(ctx context.Context, userID, recommendationID int64) (*domain.WorkoutRecommendation, error) {
	if _, err := s.Get(ctx, userID, recommendationID); err != nil {
		return nil, err
	}
	return s.recommendationRepo.MarkCompleted(ctx, recommendationID)
}
