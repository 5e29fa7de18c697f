package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wolfpack/fitness-hub/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgressHandler serves achievement and challenge routes.
type ProgressHandler struct {
	achievementService service.AchievementService
	challengeService   service.ChallengeService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(achievementService service.AchievementService, challengeService service.ChallengeService) *ProgressHandler {
	return &ProgressHandler{
		achievementService: achievementService,
		challengeService:   challengeService,
	}
}

type ChallengeProgressRequest struct {
	ChallengeID int64 `json:"challengeId" binding:"required"`
	Progress    int   `json:"progress" binding:"gte=0,lte=100"`
}

// Achievements returns the catalog joined with the caller's progress.
func (h *ProgressHandler) Achievements(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	details, err := h.achievementService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not load achievements")
		return
	}
	c.JSON(http.StatusOK, details)
}

// Challenges returns the public catalog sorted by start date.
func (h *ProgressHandler) Challenges(c *gin.Context) {
	challenges, err := h.challengeService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not load challenges")
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// UserChallenges returns the caller's joined challenges with derived
// status.
func (h *ProgressHandler) UserChallenges(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	details, err := h.challengeService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not load challenge progress")
		return
	}
	c.JSON(http.StatusOK, details)
}

// JoinChallenge enrolls the caller; joining twice returns the existing
// record.
func (h *ProgressHandler) JoinChallenge(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	challengeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid challenge id")
		return
	}

	record, err := h.challengeService.Join(c.Request.Context(), userID, challengeID)
	if err != nil {
		if errors.Is(err, service.ErrChallengeNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not join challenge")
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateChallengeProgress applies a monotonic progress update.
func (h *ProgressHandler) UpdateChallengeProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	var req ChallengeProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	record, err := h.challengeService.UpdateProgress(c.Request.Context(), userID, req.ChallengeID, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeNotJoined):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "could not update challenge progress")
		}
		return
	}
	c.JSON(http.StatusOK, record)
}
