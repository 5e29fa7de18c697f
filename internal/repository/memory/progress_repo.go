package memory

import (
	"context"
	"sort"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// achievementRepository implements repository.AchievementRepository on a
// shared Store.
type achievementRepository struct {
	store *Store
}

// NewAchievementRepository creates an achievement repository backed by the
// given store.
func NewAchievementRepository(store *Store) repository.AchievementRepository {
	return &achievementRepository{store: store}
}

func (r *achievementRepository) CreateAchievement(_ context.Context, achievement *domain.Achievement) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.achievementSeq++
	achievement.ID = s.achievementSeq
	s.achievements[achievement.ID] = *achievement
	return achievement.ID, nil
}

func (r *achievementRepository) GetAchievements(_ context.Context) ([]domain.Achievement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	achievements := make([]domain.Achievement, 0, len(s.achievements))
	for _, id := range sortedIDs(s.achievements) {
		achievements = append(achievements, s.achievements[id])
	}
	return achievements, nil
}

func (r *achievementRepository) GetAchievementByName(_ context.Context, name string) (*domain.Achievement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.achievements) {
		if achievement := s.achievements[id]; achievement.Name == name {
			return &achievement, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *achievementRepository) GetUserAchievements(_ context.Context, userID int64) ([]domain.UserAchievement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := []domain.UserAchievement{}
	for _, id := range sortedIDs(s.userAchievements) {
		if ua := s.userAchievements[id]; ua.UserID == userID {
			records = append(records, ua)
		}
	}
	return records, nil
}

func (r *achievementRepository) Unlock(_ context.Context, userID, achievementID int64, now time.Time) (*domain.UserAchievement, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	ua, ok := s.findUserAchievementLocked(userID, achievementID)
	if ok && ua.Completed {
		return &ua, false, nil
	}

	if !ok {
		s.userAchievementSeq++
		ua = domain.UserAchievement{
			ID:            s.userAchievementSeq,
			UserID:        userID,
			AchievementID: achievementID,
		}
	}
	ua.Progress = 100
	ua.Completed = true
	ua.DateEarned = &now
	s.userAchievements[ua.ID] = ua
	return &ua, true, nil
}

func (r *achievementRepository) UpdateProgress(_ context.Context, userID, achievementID int64, progress int, now time.Time) (*domain.UserAchievement, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	ua, ok := s.findUserAchievementLocked(userID, achievementID)
	if !ok {
		s.userAchievementSeq++
		ua = domain.UserAchievement{
			ID:            s.userAchievementSeq,
			UserID:        userID,
			AchievementID: achievementID,
		}
	} else if progress <= ua.Progress {
		// Progress never moves backwards.
		return &ua, false, nil
	}

	wasCompleted := ua.Completed
	ua.Progress = progress
	if progress >= 100 {
		ua.Completed = true
		if ua.DateEarned == nil {
			ua.DateEarned = &now
		}
	}
	s.userAchievements[ua.ID] = ua
	return &ua, ua.Completed && !wasCompleted, nil
}

func (s *Store) findUserAchievementLocked(userID, achievementID int64) (domain.UserAchievement, bool) {
	for _, id := range sortedIDs(s.userAchievements) {
		ua := s.userAchievements[id]
		if ua.UserID == userID && ua.AchievementID == achievementID {
			return ua, true
		}
	}
	return domain.UserAchievement{}, false
}

// challengeRepository implements repository.ChallengeRepository on a shared
// Store.
type challengeRepository struct {
	store *Store
}

// NewChallengeRepository creates a challenge repository backed by the given
// store.
func NewChallengeRepository(store *Store) repository.ChallengeRepository {
	return &challengeRepository{store: store}
}

func (r *challengeRepository) CreateChallenge(_ context.Context, challenge *domain.Challenge) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challengeSeq++
	challenge.ID = s.challengeSeq
	s.challenges[challenge.ID] = *challenge
	return challenge.ID, nil
}

func (r *challengeRepository) GetChallenges(_ context.Context) ([]domain.Challenge, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	challenges := make([]domain.Challenge, 0, len(s.challenges))
	for _, id := range sortedIDs(s.challenges) {
		challenges = append(challenges, s.challenges[id])
	}
	sort.SliceStable(challenges, func(i, j int) bool {
		return challenges[i].StartDate.Before(challenges[j].StartDate)
	})
	return challenges, nil
}

func (r *challengeRepository) GetChallengeByID(_ context.Context, id int64) (*domain.Challenge, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	challenge, ok := s.challenges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &challenge, nil
}

func (r *challengeRepository) GetUserChallenges(_ context.Context, userID int64) ([]domain.UserChallenge, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := []domain.UserChallenge{}
	for _, id := range sortedIDs(s.userChallenges) {
		if uc := s.userChallenges[id]; uc.UserID == userID {
			records = append(records, uc)
		}
	}
	return records, nil
}

func (r *challengeRepository) Join(_ context.Context, userID, challengeID int64, now time.Time) (*domain.UserChallenge, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[challengeID]; !ok {
		return nil, repository.ErrNotFound
	}

	if uc, ok := s.findUserChallengeLocked(userID, challengeID); ok {
		return &uc, nil
	}

	s.userChallengeSeq++
	uc := domain.UserChallenge{
		ID:          s.userChallengeSeq,
		UserID:      userID,
		ChallengeID: challengeID,
		DateJoined:  now,
	}
	s.userChallenges[uc.ID] = uc
	return &uc, nil
}

func (r *challengeRepository) UpdateProgress(_ context.Context, userID, challengeID int64, progress int) (*domain.UserChallenge, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	uc, ok := s.findUserChallengeLocked(userID, challengeID)
	if !ok {
		return nil, false, repository.ErrNotFound
	}

	if progress <= uc.Progress {
		return &uc, false, nil
	}

	wasCompleted := uc.Completed
	uc.Progress = progress
	if progress >= 100 {
		uc.Completed = true
	}
	s.userChallenges[uc.ID] = uc
	return &uc, uc.Completed && !wasCompleted, nil
}

func (s *Store) findUserChallengeLocked(userID, challengeID int64) (domain.UserChallenge, bool) {
	for _, id := range sortedIDs(s.userChallenges) {
		uc := s.userChallenges[id]
		if uc.UserID == userID && uc.ChallengeID == challengeID {
			return uc, true
		}
	}
	return domain.UserChallenge{}, false
}
