package memory

import (
	"context"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// preferenceRepository implements repository.PreferenceRepository on a
// shared Store.
type preferenceRepository struct {
	store *Store
}

// NewPreferenceRepository creates a preference repository backed by the
// given store.
func NewPreferenceRepository(store *Store) repository.PreferenceRepository {
	return &preferenceRepository{store: store}
}

func (r *preferenceRepository) Get(_ context.Context, userID int64) (*domain.UserPreferences, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs, ok := s.preferences[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &prefs, nil
}

func (r *preferenceRepository) Save(_ context.Context, prefs *domain.UserPreferences) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferences[prefs.UserID] = *prefs
	return nil
}

// recommendationRepository implements repository.RecommendationRepository
// on a shared Store.
type recommendationRepository struct {
	store *Store
}

// NewRecommendationRepository creates a recommendation repository backed by
// the given store.
func NewRecommendationRepository(store *Store) repository.RecommendationRepository {
	return &recommendationRepository{store: store}
}

func (r *recommendationRepository) Create(_ context.Context, rec *domain.WorkoutRecommendation) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recommendationSeq++
	rec.ID = s.recommendationSeq
	s.recommendations[rec.ID] = *rec
	return rec.ID, nil
}

func (r *recommendationRepository) GetByID(_ context.Context, id int64) (*domain.WorkoutRecommendation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recommendations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *recommendationRepository) GetByUserID(_ context.Context, userID int64) ([]domain.WorkoutRecommendation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first, matching the creation-time ordering served by the
	// persistent backend.
	recs := []domain.WorkoutRecommendation{}
	ids := sortedIDs(s.recommendations)
	for i := len(ids) - 1; i >= 0; i-- {
		if rec := s.recommendations[ids[i]]; rec.UserID == userID {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (r *recommendationRepository) MarkCompleted(_ context.Context, id int64) (*domain.WorkoutRecommendation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recommendations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec.IsCompleted = true
	s.recommendations[id] = rec
	return &rec, nil
}
