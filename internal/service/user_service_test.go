package service

import (
	"context"
	"testing"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFileStorage fakes the presigned URL backend for tests.
type stubFileStorage struct {
	deleted []string
}

func (s *stubFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *stubFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *stubFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func TestResolveQRCodeChecksApparelFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	apparel := memory.NewApparelRepository(store)
	svc := NewUserService(users, apparel, nil)

	userID, err := users.Create(ctx, &domain.User{Username: "wolf", Level: 1, Privacy: domain.DefaultPrivacySettings()})
	require.NoError(t, err)
	_, err = users.UpdateQRCode(ctx, userID, "code-user")
	require.NoError(t, err)

	apparelID, err := apparel.Create(ctx, &domain.Apparel{UserID: userID, Name: "Shoes", Type: "shoes"})
	require.NoError(t, err)
	_, err = apparel.UpdateQRCode(ctx, apparelID, "code-apparel")
	require.NoError(t, err)

	result, err := svc.ResolveQRCode(ctx, "code-apparel")
	require.NoError(t, err)
	assert.Equal(t, "apparel", result.Type)
	require.NotNil(t, result.Apparel)
	assert.Nil(t, result.User)

	result, err = svc.ResolveQRCode(ctx, "code-user")
	require.NoError(t, err)
	assert.Equal(t, "user", result.Type)
	require.NotNil(t, result.User)
	assert.Nil(t, result.Apparel)

	_, err = svc.ResolveQRCode(ctx, "code-unknown")
	assert.ErrorIs(t, err, ErrQRCodeNotFound)

	_, err = svc.ResolveQRCode(ctx, "")
	assert.ErrorIs(t, err, ErrQRCodeNotFound)
}

func TestGetOrCreateQRCodeIsStable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	svc := NewUserService(users, memory.NewApparelRepository(store), nil)

	userID, err := users.Create(ctx, &domain.User{Username: "wolf", Level: 1, Privacy: domain.DefaultPrivacySettings()})
	require.NoError(t, err)

	first, err := svc.GetOrCreateQRCode(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.GetOrCreateQRCode(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvatarRequiresStorage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	svc := NewUserService(users, memory.NewApparelRepository(store), nil)

	userID, err := users.Create(ctx, &domain.User{Username: "wolf", Level: 1, Privacy: domain.DefaultPrivacySettings()})
	require.NoError(t, err)

	_, err = svc.RequestAvatarUpload(ctx, userID, "image/png")
	assert.ErrorIs(t, err, ErrStorageDisabled)

	_, err = svc.GetAvatarDownloadURL(ctx, userID)
	assert.ErrorIs(t, err, ErrStorageDisabled)

	assert.ErrorIs(t, svc.RemoveAvatar(ctx, userID), ErrStorageDisabled)
}

func TestAvatarLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	fs := &stubFileStorage{}
	svc := NewUserService(users, memory.NewApparelRepository(store), fs)

	userID, err := users.Create(ctx, &domain.User{Username: "wolf", Level: 1, Privacy: domain.DefaultPrivacySettings()})
	require.NoError(t, err)

	// Nothing to download before the first upload.
	_, err = svc.GetAvatarDownloadURL(ctx, userID)
	assert.ErrorIs(t, err, ErrAvatarNotSet)

	ticket, err := svc.RequestAvatarUpload(ctx, userID, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "avatars/1", ticket.ObjectKey)

	url, err := svc.GetAvatarDownloadURL(ctx, userID)
	require.NoError(t, err)
	assert.Contains(t, url, "avatars/1")

	require.NoError(t, svc.RemoveAvatar(ctx, userID))
	assert.Equal(t, []string{"avatars/1"}, fs.deleted)

	user, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, user.ProfilePicture)

	_, err = svc.GetAvatarDownloadURL(ctx, userID)
	assert.ErrorIs(t, err, ErrAvatarNotSet)

	// Removing again deletes nothing further.
	require.NoError(t, svc.RemoveAvatar(ctx, userID))
	assert.Len(t, fs.deleted, 1)
}
