package service

import (
	"context"
	"errors"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/qr"
	"wolfpack/fitness-hub/internal/repository"
)

const defaultInsightLimit = 5

// ApparelService manages a user's registered garments and their usage
// insights.
type ApparelService interface {
	Register(ctx context.Context, userID int64, name, apparelType string) (*domain.Apparel, error)
	List(ctx context.Context, userID int64) ([]domain.Apparel, error)
	// Get returns the garment after an ownership check.
	Get(ctx context.Context, userID, apparelID int64) (*domain.Apparel, error)
	Stats(ctx context.Context, userID, apparelID int64) (*domain.ApparelUsageStats, error)
	MostUsed(ctx context.Context, userID int64, limit int) ([]domain.Apparel, error)
	BestPerforming(ctx context.Context, userID int64, limit int) ([]domain.Apparel, error)
}

type apparelService struct {
	apparelRepo repository.ApparelRepository
}

// NewApparelService creates a new instance of apparelService.
func NewApparelService(apparelRepo repository.ApparelRepository) ApparelService {
	return &apparelService{apparelRepo: apparelRepo}
}

func (s *apparelService) Register(ctx context.Context, userID int64, name, apparelType string) (*domain.Apparel, error) {
	if name == "" || apparelType == "" {
		return nil, ErrValidation
	}

	apparel := &domain.Apparel{
		UserID:    userID,
		Name:      name,
		Type:      apparelType,
		DateAdded: time.Now(),
	}
	id, err := s.apparelRepo.Create(ctx, apparel)
	if err != nil {
		return nil, err
	}

	// The QR identifier embeds the allocated id, so it is stamped after
	// creation.
	return s.apparelRepo.UpdateQRCode(ctx, id, qr.ForApparel(id, userID))
}

func (s *apparelService) List(ctx context.Context, userID int64) ([]domain.Apparel, error) {
	return s.apparelRepo.GetByUserID(ctx, userID)
}

func (s *apparelService) Get(ctx context.Context, userID, apparelID int64) (*domain.Apparel, error) {
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
	return apparel, nil
}

func (s *apparelService) Stats(ctx context.Context, userID, apparelID int64) (*domain.ApparelUsageStats, error) {
	apparel, err := s.Get(ctx, userID, apparelID)
	if err != nil {
		return nil, err
	}
	stats := apparel.UsageStats()
	return &stats, nil
}

func (s *apparelService) MostUsed(ctx context.Context, userID int64, limit int) ([]domain.Apparel, error) {
	if limit <= 0 {
		limit = defaultInsightLimit
	}
	return s.apparelRepo.MostUsed(ctx, userID, limit)
}

func (s *apparelService) BestPerforming(ctx context.Context, userID int64, limit int) ([]domain.Apparel, error) {
	if limit <= 0 {
		limit = defaultInsightLimit
	}
	return s.apparelRepo.BestPerforming(ctx, userID, limit)
}
