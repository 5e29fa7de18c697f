package memory

import (
	"context"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
)

// integrationRepository implements repository.IntegrationRepository on a
// shared Store.
type integrationRepository struct {
	store *Store
}

// NewIntegrationRepository creates an integration repository backed by the
// given store.
func NewIntegrationRepository(store *Store) repository.IntegrationRepository {
	return &integrationRepository{store: store}
}

func (r *integrationRepository) GetByUserID(_ context.Context, userID int64) ([]domain.IntegratedApp, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := []domain.IntegratedApp{}
	for _, id := range sortedIDs(s.integratedApps) {
		if app := s.integratedApps[id]; app.UserID == userID {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

func (r *integrationRepository) Connect(_ context.Context, userID int64, appName, accessToken, refreshToken string, now time.Time) (*domain.IntegratedApp, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.findIntegratedAppLocked(userID, appName)
	if !ok {
		s.integratedAppSeq++
		app = domain.IntegratedApp{
			ID:      s.integratedAppSeq,
			UserID:  userID,
			AppName: appName,
		}
	}
	app.Connected = true
	app.AccessToken = accessToken
	app.RefreshToken = refreshToken
	app.LastSynced = &now
	s.integratedApps[app.ID] = app
	return &app, nil
}

func (r *integrationRepository) Disconnect(_ context.Context, userID int64, appName string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.findIntegratedAppLocked(userID, appName)
	if !ok {
		return nil
	}
	app.Connected = false
	app.AccessToken = ""
	app.RefreshToken = ""
	s.integratedApps[app.ID] = app
	return nil
}

func (s *Store) findIntegratedAppLocked(userID int64, appName string) (domain.IntegratedApp, bool) {
	for _, id := range sortedIDs(s.integratedApps) {
		app := s.integratedApps[id]
		if app.UserID == userID && app.AppName == appName {
			return app, true
		}
	}
	return domain.IntegratedApp{}, false
}
