package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	cookieName  string
	cookieTTL   time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieName:  cookieName,
		cookieTTL:   cookieTTL,
	}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID             int64                  `json:"id"`
	Username       string                 `json:"username"`
	Email          string                 `json:"email,omitempty"`
	FullName       string                 `json:"fullName,omitempty"`
	Level          int                    `json:"level"`
	Points         int                    `json:"points"`
	Role           domain.Role            `json:"role"`
	QRCode         string                 `json:"qrCode,omitempty"`
	ProfilePicture string                 `json:"profilePicture,omitempty"`
	Privacy        domain.PrivacySettings `json:"privacySettings"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Register creates a new user account and logs it in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Email, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not process registration")
		}
		return
	}

	// Registration doubles as login so the client lands authenticated.
	token, _, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not establish session")
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user, sets the session cookie and returns the token
// for non-browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) || errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusUnauthorized, "invalid username or password")
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not process login")
		}
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Logout clears the session cookie. The JWT itself stays valid until
// expiry; the session is cookie-scoped.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookieName, token, int(h.cookieTTL.Seconds()), "/", "", false, true)
}

// MapUserToResponse converts a domain User to a UserResponse DTO. The DTO
// structurally excludes the password hash, so it cannot leak through
// serialization.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.FullName,
		Level:          user.Level,
		Points:         user.Points,
		Role:           user.Role,
		QRCode:         user.QRCode,
		ProfilePicture: user.ProfilePicture,
		Privacy:        user.Privacy,
	}
}
