package service

import (
	"context"
	"testing"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
	"wolfpack/fitness-hub/internal/repository/memory"
	"wolfpack/fitness-hub/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type challengeFixture struct {
	users   repository.UserRepository
	service ChallengeService
}

func newChallengeFixture(t *testing.T) *challengeFixture {
	t.Helper()
	store := memory.NewStore()
	challenges := memory.NewChallengeRepository(store)
	users := memory.NewUserRepository(store)
	require.NoError(t, seed.Challenges(context.Background(), challenges, zap.NewNop()))
	return &challengeFixture{
		users:   users,
		service: NewChallengeService(challenges, users, zap.NewNop()),
	}
}

func (f *challengeFixture) createUser(t *testing.T, username string) int64 {
	t.Helper()
	id, err := f.users.Create(context.Background(), &domain.User{
		Username: username,
		Level:    1,
		Role:     domain.RoleMember,
		Privacy:  domain.DefaultPrivacySettings(),
	})
	require.NoError(t, err)
	return id
}

func TestChallengeCatalogSeeded(t *testing.T) {
	f := newChallengeFixture(t)

	challenges, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, challenges, 3)
}

func TestJoinUnknownChallenge(t *testing.T) {
	f := newChallengeFixture(t)
	userID := f.createUser(t, "wolf")

	_, err := f.service.Join(context.Background(), userID, 42)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestChallengeCompletionBonusOnce(t *testing.T) {
	ctx := context.Background()
	f := newChallengeFixture(t)
	userID := f.createUser(t, "wolf")

	_, err := f.service.Join(ctx, userID, 2)
	require.NoError(t, err)

	record, err := f.service.UpdateProgress(ctx, userID, 2, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, record.Progress)
	assert.False(t, record.Completed)

	// Completion pays the bonus.
	record, err = f.service.UpdateProgress(ctx, userID, 2, 100)
	require.NoError(t, err)
	assert.True(t, record.Completed)

	u, err := f.users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChallengePointBonus, u.Points)

	// Repeating the completed progress never pays again.
	_, err = f.service.UpdateProgress(ctx, userID, 2, 100)
	require.NoError(t, err)
	u, err = f.users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChallengePointBonus, u.Points)
}

func TestChallengeProgressValidation(t *testing.T) {
	ctx := context.Background()
	f := newChallengeFixture(t)
	userID := f.createUser(t, "wolf")

	_, err := f.service.UpdateProgress(ctx, userID, 2, -1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.UpdateProgress(ctx, userID, 2, 101)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.UpdateProgress(ctx, userID, 2, 10)
	assert.ErrorIs(t, err, ErrChallengeNotJoined)
}

func TestListForUserDerivesStatus(t *testing.T) {
	ctx := context.Background()
	f := newChallengeFixture(t)
	userID := f.createUser(t, "wolf")

	// Challenge 1 starts in three days; challenge 2 is already running.
	_, err := f.service.Join(ctx, userID, 1)
	require.NoError(t, err)
	_, err = f.service.Join(ctx, userID, 2)
	require.NoError(t, err)

	details, err := f.service.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	byChallenge := map[int64]domain.ChallengeStatus{}
	for _, d := range details {
		byChallenge[d.ChallengeID] = d.Status
	}
	assert.Equal(t, domain.ChallengeUpcoming, byChallenge[1])
	assert.Equal(t, domain.ChallengeActive, byChallenge[2])
}
