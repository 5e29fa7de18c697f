package memory

import (
	"context"
	"sort"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// userRepository implements repository.UserRepository on a shared Store.
type userRepository struct {
	store *Store
}

// NewUserRepository creates a user repository backed by the given store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return 0, repository.ErrDuplicate
		}
	}

	s.userSeq++
	user.ID = s.userSeq
	s.users[user.ID] = *user
	return user.ID, nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		if user := s.users[id]; user.Username == username {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByQRCode(_ context.Context, qrCode string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		if user := s.users[id]; user.QRCode != "" && user.QRCode == qrCode {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) UpdateQRCode(_ context.Context, userID int64, qrCode string) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.QRCode = qrCode
	s.users[userID] = user
	return &user, nil
}

func (r *userRepository) AddPoints(_ context.Context, userID int64, points int) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user = user.AddPoints(points)
	s.users[userID] = user
	return &user, nil
}

func (r *userRepository) UpdatePrivacy(_ context.Context, userID int64, settings domain.PrivacySettings) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.Privacy = settings
	s.users[userID] = user
	return &user, nil
}

func (r *userRepository) UpdateProfilePicture(_ context.Context, userID int64, objectKey string) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.ProfilePicture = objectKey
	s.users[userID] = user
	return &user, nil
}

func (r *userRepository) Leaderboard(_ context.Context, limit int) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, id := range sortedIDs(s.users) {
		user := s.users[id]
		if !user.Privacy.ShowInLeaderboard {
			continue
		}
		users = append(users, user)
	}

	// Stable sort keeps insertion order for equal point totals.
	sort.SliceStable(users, func(i, j int) bool { return users[i].Points > users[j].Points })

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
