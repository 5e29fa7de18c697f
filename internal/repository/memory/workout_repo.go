package memory

import (
	"context"
	"sort"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// workoutRepository implements repository.WorkoutRepository on a shared
// Store.
type workoutRepository struct {
	store *Store
}

// NewWorkoutRepository creates a workout repository backed by the given
// store.
func NewWorkoutRepository(store *Store) repository.WorkoutRepository {
	return &workoutRepository{store: store}
}

func (r *workoutRepository) Create(_ context.Context, workout *domain.Workout) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workoutSeq++
	workout.ID = s.workoutSeq
	s.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (r *workoutRepository) GetByUserID(_ context.Context, userID int64, limit int) ([]domain.Workout, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return r.filterLocked(func(w domain.Workout) bool { return w.UserID == userID }, limit), nil
}

func (r *workoutRepository) GetByApparelID(_ context.Context, apparelID int64, limit int) ([]domain.Workout, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return r.filterLocked(func(w domain.Workout) bool {
		return w.ApparelID != nil && *w.ApparelID == apparelID
	}, limit), nil
}

// filterLocked collects matching workouts newest first. Callers must hold
// the store lock.
func (r *workoutRepository) filterLocked(match func(domain.Workout) bool, limit int) []domain.Workout {
	s := r.store
	workouts := []domain.Workout{}
	for _, id := range sortedIDs(s.workouts) {
		if w := s.workouts[id]; match(w) {
			workouts = append(workouts, w)
		}
	}
	sort.SliceStable(workouts, func(i, j int) bool { return workouts[i].Date.After(workouts[j].Date) })
	return clip(workouts, limit)
}
