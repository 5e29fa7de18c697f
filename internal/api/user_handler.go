package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile, privacy, leaderboard and QR scan routes.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type PrivacyRequest struct {
	ShareWorkouts     *bool `json:"shareWorkouts" binding:"required"`
	ShareAchievements *bool `json:"shareAchievements" binding:"required"`
	ShowInLeaderboard *bool `json:"showInLeaderboard" binding:"required"`
}

type ScanRequest struct {
	QRCode string `json:"qrCode" binding:"required"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// LeaderboardEntry is the public projection used on the leaderboard; only
// non-sensitive display fields are exposed.
type LeaderboardEntry struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"fullName,omitempty"`
	Level          int    `json:"level"`
	Points         int    `json:"points"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not load profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetQRCode returns the user's QR identifier, generating one on first
// request.
func (h *UserHandler) GetQRCode(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	code, err := h.userService.GetOrCreateQRCode(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not generate qr code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"qrCode": code})
}

// UpdatePrivacy replaces the user's privacy flags.
func (h *UserHandler) UpdatePrivacy(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	var req PrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	user, err := h.userService.UpdatePrivacy(c.Request.Context(), userID, domain.PrivacySettings{
		ShareWorkouts:     *req.ShareWorkouts,
		ShareAchievements: *req.ShareAchievements,
		ShowInLeaderboard: *req.ShowInLeaderboard,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not update privacy settings")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// Leaderboard returns the top users by points, privacy-filtered.
func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	users, err := h.userService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not load leaderboard")
		return
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			ID:             u.ID,
			Username:       u.Username,
			FullName:       u.FullName,
			Level:          u.Level,
			Points:         u.Points,
			ProfilePicture: u.ProfilePicture,
		})
	}
	c.JSON(http.StatusOK, entries)
}

// Scan resolves an opaque QR string to the apparel or user it identifies.
func (h *UserHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	result, err := h.userService.ResolveQRCode(c.Request.Context(), req.QRCode)
	if err != nil {
		if errors.Is(err, service.ErrQRCodeNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not resolve qr code")
		}
		return
	}

	switch result.Type {
	case "apparel":
		c.JSON(http.StatusOK, gin.H{"type": "apparel", "data": result.Apparel})
	case "user":
		c.JSON(http.StatusOK, gin.H{"type": "user", "data": MapUserToResponse(result.User)})
	default:
		abortWithError(c, http.StatusInternalServerError, "could not resolve qr code")
	}
}

// RequestAvatarUpload presigns an upload slot for the profile picture.
func (h *UserHandler) RequestAvatarUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	ticket, err := h.userService.RequestAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			abortWithError(c, http.StatusNotImplemented, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not prepare upload")
		}
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// GetAvatar presigns a download for the stored profile picture.
func (h *UserHandler) GetAvatar(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	url, err := h.userService.GetAvatarDownloadURL(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStorageDisabled):
			abortWithError(c, http.StatusNotImplemented, err.Error())
		case errors.Is(err, service.ErrAvatarNotSet):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "could not prepare download")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// RemoveAvatar deletes the stored profile picture; removing an avatar that
// was never set succeeds.
func (h *UserHandler) RemoveAvatar(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	if err := h.userService.RemoveAvatar(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			abortWithError(c, http.StatusNotImplemented, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not remove avatar")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "avatar removed"})
}
