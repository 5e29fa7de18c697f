package service

import (
	"context"
	"errors"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// ErrPreferencesNotFound is returned when the user has never saved
// preferences.
var ErrPreferencesNotFound = errors.New("preferences not found")

// PreferenceUpdate carries a partial preference change. Nil fields are left
// untouched by Update.
type PreferenceUpdate struct {
	FitnessLevel      *string
	WorkoutPreference *string
	FitnessGoal       *string
	WorkoutDuration   *int
	WorkoutFrequency  *int
	Equipment         []string
	Limitations       []string
}

// PreferenceService stores the per-user record driving recommendation
// generation. Save replaces wholesale; Update merges field by field.
type PreferenceService interface {
	Get(ctx context.Context, userID int64) (*domain.UserPreferences, error)
	Save(ctx context.Context, prefs domain.UserPreferences) (*domain.UserPreferences, error)
	Update(ctx context.Context, userID int64, update PreferenceUpdate) (*domain.UserPreferences, error)
}

type preferenceService struct {
	preferenceRepo repository.PreferenceRepository
}

// NewPreferenceService creates a new instance of preferenceService.
func NewPreferenceService(preferenceRepo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{preferenceRepo: preferenceRepo}
}

func (s *preferenceService) Get(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	prefs, err := s.preferenceRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}
	return prefs, nil
}

func (s *preferenceService) Save(ctx context.Context, prefs domain.UserPreferences) (*domain.UserPreferences, error) {
	if err := validatePreferences(&prefs); err != nil {
		return nil, err
	}
	if err := s.preferenceRepo.Save(ctx, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (s *preferenceService) Update(ctx context.Context, userID int64, update PreferenceUpdate) (*domain.UserPreferences, error) {
	prefs, err := s.preferenceRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// Patching a record that does not exist yet starts from defaults.
		prefs = &domain.UserPreferences{UserID: userID}
	}

	if update.FitnessLevel != nil {
		prefs.FitnessLevel = *update.FitnessLevel
	}
	if update.WorkoutPreference != nil {
		prefs.WorkoutPreference = *update.WorkoutPreference
	}
	if update.FitnessGoal != nil {
		prefs.FitnessGoal = *update.FitnessGoal
	}
	if update.WorkoutDuration != nil {
		prefs.WorkoutDuration = *update.WorkoutDuration
	}
	if update.WorkoutFrequency != nil {
		prefs.WorkoutFrequency = *update.WorkoutFrequency
	}
	if update.Equipment != nil {
		prefs.Equipment = update.Equipment
	}
	if update.Limitations != nil {
		prefs.Limitations = update.Limitations
	}

	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}
	if err := s.preferenceRepo.Save(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func validatePreferences(prefs *domain.UserPreferences) error {
	if prefs.UserID == 0 {
		return ErrValidation
	}
	if prefs.WorkoutDuration != 0 && (prefs.WorkoutDuration < 5 || prefs.WorkoutDuration > 120) {
		return ErrValidation
	}
	if prefs.WorkoutFrequency != 0 && (prefs.WorkoutFrequency < 1 || prefs.WorkoutFrequency > 7) {
		return ErrValidation
	}
	return nil
}
