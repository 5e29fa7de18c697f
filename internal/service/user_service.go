package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/qr"
	"wolfpack/fitness-hub/internal/repository"
	"wolfpack/fitness-hub/internal/storage"
)

// --- Error Definitions ---
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrQRCodeNotFound  = errors.New("qr code not recognized")
	ErrStorageDisabled = errors.New("file storage is not configured")
	ErrAvatarNotSet    = errors.New("no profile picture set")
)

// ScanResult is the outcome of resolving an opaque QR string. Exactly one
// of User or Apparel is set, matching Type.
type ScanResult struct {
	Type    string          // "user" or "apparel"
	User    *domain.User    // set when Type == "user"
	Apparel *domain.Apparel // set when Type == "apparel"
}

// AvatarUploadTicket carries a presigned upload URL and the matching
// download URL for a profile picture.
type AvatarUploadTicket struct {
	UploadURL   string `json:"uploadUrl"`
	DownloadURL string `json:"downloadUrl"`
	ObjectKey   string `json:"objectKey"`
}

// UserService covers the authenticated user's own profile operations plus
// the public leaderboard and QR scanning.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	GetOrCreateQRCode(ctx context.Context, userID int64) (string, error)
	UpdatePrivacy(ctx context.Context, userID int64, settings domain.PrivacySettings) (*domain.User, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.User, error)
	// ResolveQRCode disambiguates an opaque QR string into the apparel or
	// user it identifies. Apparel codes are checked first.
	ResolveQRCode(ctx context.Context, code string) (*ScanResult, error)
	// RequestAvatarUpload presigns an upload slot for the user's profile
	// picture and records the object key on the profile.
	RequestAvatarUpload(ctx context.Context, userID int64, contentType string) (*AvatarUploadTicket, error)
	// GetAvatarDownloadURL presigns a download for the stored profile
	// picture. ErrAvatarNotSet when the user never uploaded one.
	GetAvatarDownloadURL(ctx context.Context, userID int64) (string, error)
	// RemoveAvatar deletes the stored object and clears the profile
	// picture. Removing an avatar that was never set is a no-op.
	RemoveAvatar(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo    repository.UserRepository
	apparelRepo repository.ApparelRepository
	fileStorage storage.FileStorage // nil when S3 is not configured
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, apparelRepo repository.ApparelRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		apparelRepo: apparelRepo,
		fileStorage: fileStorage,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetOrCreateQRCode(ctx context.Context, userID int64) (string, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.QRCode != "" {
		return user.QRCode, nil
	}

	updated, err := s.userRepo.UpdateQRCode(ctx, userID, qr.ForUser(userID))
	if err != nil {
		return "", err
	}
	return updated.QRCode, nil
}

func (s *userService) UpdatePrivacy(ctx context.Context, userID int64, settings domain.PrivacySettings) (*domain.User, error) {
	user, err := s.userRepo.UpdatePrivacy(ctx, userID, settings)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Leaderboard(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.userRepo.Leaderboard(ctx, limit)
}

func (s *userService) ResolveQRCode(ctx context.Context, code string) (*ScanResult, error) {
	if code == "" {
		return nil, ErrQRCodeNotFound
	}

	apparel, err := s.apparelRepo.GetByQRCode(ctx, code)
	if err == nil {
		return &ScanResult{Type: "apparel", Apparel: apparel}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user, err := s.userRepo.GetByQRCode(ctx, code)
	if err == nil {
		return &ScanResult{Type: "user", User: user}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return nil, ErrQRCodeNotFound
}

func (s *userService) RequestAvatarUpload(ctx context.Context, userID int64, contentType string) (*AvatarUploadTicket, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageDisabled
	}
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("avatars/%d", userID)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.UpdateProfilePicture(ctx, userID, objectKey); err != nil {
		return nil, err
	}
	return &AvatarUploadTicket{
		UploadURL:   uploadURL,
		DownloadURL: downloadURL,
		ObjectKey:   objectKey,
	}, nil
}

func (s *userService) GetAvatarDownloadURL(ctx context.Context, userID int64) (string, error) {
	if s.fileStorage == nil {
		return "", ErrStorageDisabled
	}
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.ProfilePicture == "" {
		return "", ErrAvatarNotSet
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, user.ProfilePicture, 24*time.Hour)
}

func (s *userService) RemoveAvatar(ctx context.Context, userID int64) error {
	if s.fileStorage == nil {
		return ErrStorageDisabled
	}
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if user.ProfilePicture == "" {
		return nil
	}

	if err := s.fileStorage.DeleteObject(ctx, user.ProfilePicture); err != nil {
		return err
	}
	_, err = s.userRepo.UpdateProfilePicture(ctx, userID, "")
	return err
}
