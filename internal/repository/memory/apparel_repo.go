package memory

import (
	"context"
	"sort"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// apparelRepository implements repository.ApparelRepository on a shared
// Store.
type apparelRepository struct {
	store *Store
}

// NewApparelRepository creates an apparel repository backed by the given
// store.
func NewApparelRepository(store *Store) repository.ApparelRepository {
	return &apparelRepository{store: store}
}

func (r *apparelRepository) Create(_ context.Context, apparel *domain.Apparel) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apparelSeq++
	apparel.ID = s.apparelSeq
	s.apparel[apparel.ID] = *apparel
	return apparel.ID, nil
}

func (r *apparelRepository) GetByID(_ context.Context, id int64) (*domain.Apparel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	apparel, ok := s.apparel[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &apparel, nil
}

func (r *apparelRepository) GetByUserID(_ context.Context, userID int64) ([]domain.Apparel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return r.ownedLocked(userID), nil
}

func (r *apparelRepository) GetByQRCode(_ context.Context, qrCode string) (*domain.Apparel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.apparel) {
		if apparel := s.apparel[id]; apparel.QRCode == qrCode {
			return &apparel, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *apparelRepository) UpdateQRCode(_ context.Context, apparelID int64, qrCode string) (*domain.Apparel, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	apparel, ok := s.apparel[apparelID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	apparel.QRCode = qrCode
	s.apparel[apparelID] = apparel
	return &apparel, nil
}

func (r *apparelRepository) RecordUsage(_ context.Context, apparelID int64, duration, calories int, now time.Time) (*domain.Apparel, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	apparel, ok := s.apparel[apparelID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	apparel = apparel.WithUsage(duration, calories, now)
	s.apparel[apparelID] = apparel
	return &apparel, nil
}

func (r *apparelRepository) MostUsed(_ context.Context, userID int64, limit int) ([]domain.Apparel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := r.ownedLocked(userID)
	sort.SliceStable(owned, func(i, j int) bool { return owned[i].UsageCount > owned[j].UsageCount })
	return clip(owned, limit), nil
}

func (r *apparelRepository) BestPerforming(_ context.Context, userID int64, limit int) ([]domain.Apparel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := r.ownedLocked(userID)
	sort.SliceStable(owned, func(i, j int) bool { return owned[i].PerformanceRating > owned[j].PerformanceRating })
	return clip(owned, limit), nil
}

// ownedLocked collects the user's apparel in insertion order. Callers must
// hold the store lock.
func (r *apparelRepository) ownedLocked(userID int64) []domain.Apparel {
	s := r.store
	owned := []domain.Apparel{}
	for _, id := range sortedIDs(s.apparel) {
		if apparel := s.apparel[id]; apparel.UserID == userID {
			owned = append(owned, apparel)
		}
	}
	return owned
}

func clip[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
