package service

import (
	"context"
	"errors"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"

	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrChallengeNotJoined = errors.New("user has not joined this challenge")
)

// ChallengeService manages the public challenge catalog and per-user
// participation.
type ChallengeService interface {
	List(ctx context.Context) ([]domain.Challenge, error)
	// ListForUser returns the user's joined challenges with catalog details
	// and the time-derived status.
	ListForUser(ctx context.Context, userID int64) ([]domain.UserChallengeDetail, error)
	Join(ctx context.Context, userID, challengeID int64) (*domain.UserChallenge, error)
	// UpdateProgress applies a monotonic progress update and awards the
	// one-time completion bonus when the challenge completes.
	UpdateProgress(ctx context.Context, userID, challengeID int64, progress int) (*domain.UserChallenge, error)
}

type challengeService struct {
	challengeRepo repository.ChallengeRepository
	userRepo      repository.UserRepository
	logger        *zap.Logger
}

// NewChallengeService creates a new instance of challengeService.
func NewChallengeService(challengeRepo repository.ChallengeRepository, userRepo repository.UserRepository, logger *zap.Logger) ChallengeService {
	return &challengeService{
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

func (s *challengeService) List(ctx context.Context) ([]domain.Challenge, error) {
	return s.challengeRepo.GetChallenges(ctx)
}

func (s *challengeService) ListForUser(ctx context.Context, userID int64) ([]domain.UserChallengeDetail, error) {
	records, err := s.challengeRepo.GetUserChallenges(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	details := make([]domain.UserChallengeDetail, 0, len(records))
	for _, record := range records {
		challenge, err := s.challengeRepo.GetChallengeByID(ctx, record.ChallengeID)
		if err != nil {
			// A participation row without its catalog entry is a data bug;
			// skip it rather than failing the whole listing.
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn("user challenge references missing catalog entry",
					zap.Int64("userId", userID),
					zap.Int64("challengeId", record.ChallengeID))
				continue
			}
			return nil, err
		}
		details = append(details, domain.UserChallengeDetail{
			UserChallenge: record,
			Challenge:     *challenge,
			Status:        challenge.Status(now),
		})
	}
	return details, nil
}

func (s *challengeService) Join(ctx context.Context, userID, challengeID int64) (*domain.UserChallenge, error) {
	record, err := s.challengeRepo.Join(ctx, userID, challengeID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *challengeService) UpdateProgress(ctx context.Context, userID, challengeID int64, progress int) (*domain.UserChallenge, error) {
	if progress < 0 || progress > 100 {
		return nil, ErrValidation
	}

	record, completedNow, err := s.challengeRepo.UpdateProgress(ctx, userID, challengeID, progress)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotJoined
		}
		return nil, err
	}

	if completedNow {
		if _, err := s.userRepo.AddPoints(ctx, userID, domain.ChallengePointBonus); err != nil {
			return nil, err
		}
		s.logger.Info("challenge completed",
			zap.Int64("userId", userID),
			zap.Int64("challengeId", challengeID))
	}
	return record, nil
}
