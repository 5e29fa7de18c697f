package service

import (
	"context"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// IntegrationService tracks connections to third-party fitness apps. The
// OAuth dance happens client-side; the server only stores the resulting
// tokens.
type IntegrationService interface {
	List(ctx context.Context, userID int64) ([]domain.IntegratedApp, error)
	Connect(ctx context.Context, userID int64, appName, accessToken, refreshToken string) (*domain.IntegratedApp, error)
	Disconnect(ctx context.Context, userID int64, appName string) error
}

type integrationService struct {
	integrationRepo repository.IntegrationRepository
}

// NewIntegrationService creates a new instance of integrationService.
func NewIntegrationService(integrationRepo repository.IntegrationRepository) IntegrationService {
	return &integrationService{integrationRepo: integrationRepo}
}

func (s *integrationService) List(ctx context.Context, userID int64) ([]domain.IntegratedApp, error) {
	return s.integrationRepo.GetByUserID(ctx, userID)
}

func (s *integrationService) Connect(ctx context.Context, userID int64, appName, accessToken, refreshToken string) (*domain.IntegratedApp, error) {
	if appName == "" {
		return nil, ErrValidation
	}
	return s.integrationRepo.Connect(ctx, userID, appName, accessToken, refreshToken, time.Now())
}

func (s *integrationService) Disconnect(ctx context.Context, userID int64, appName string) error {
	if appName == "" {
		return ErrValidation
	}
	return s.integrationRepo.Disconnect(ctx, userID, appName)
}
