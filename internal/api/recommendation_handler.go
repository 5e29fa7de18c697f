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

// RecommendationHandler serves preference and workout recommendation
// routes.
type RecommendationHandler struct {
	preferenceService     service.PreferenceService
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(preferenceService service.PreferenceService, recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		preferenceService:     preferenceService,
		recommendationService: recommendationService,
	}
}

type SavePreferencesRequest struct {
	FitnessLevel      string   `json:"fitnessLevel" binding:"required"`
	WorkoutPreference string   `json:"workoutPreference" binding:"required"`
	FitnessGoal       string   `json:"fitnessGoal" binding:"required"`
	WorkoutDuration   int      `json:"workoutDuration" binding:"required,gte=5,lte=120"`
	WorkoutFrequency  int      `json:"workoutFrequency" binding:"required,gte=1,lte=7"`
	Equipment         []string `json:"equipment"`
	Limitations       []string `json:"limitations"`
}

type UpdatePreferencesRequest struct {
	FitnessLevel      *string  `json:"fitnessLevel"`
	WorkoutPreference *string  `json:"workoutPreference"`
	FitnessGoal       *string  `json:"fitnessGoal"`
	WorkoutDuration   *int     `json:"workoutDuration"`
	WorkoutFrequency  *int     `json:"workoutFrequency"`
	Equipment         []string `json:"equipment"`
	Limitations       []string `json:"limitations"`
}

// GetPreferences returns the caller's stored preferences.
func (h *RecommendationHandler) GetPreferences(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	prefs, err := h.preferenceService.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrPreferencesNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not load preferences")
		}
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// SavePreferences replaces the caller's preferences wholesale.
func (h *RecommendationHandler) SavePreferences(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	var req SavePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	prefs, err := h.preferenceService.Save(c.Request.Context(), domain.UserPreferences{
		UserID:            userID,
		FitnessLevel:      req.FitnessLevel,
		WorkoutPreference: req.WorkoutPreference,
		FitnessGoal:       req.FitnessGoal,
		WorkoutDuration:   req.WorkoutDuration,
		WorkoutFrequency:  req.WorkoutFrequency,
		Equipment:         req.Equipment,
		Limitations:       req.Limitations,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not save preferences")
		}
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences merges a partial change into the stored preferences.
func (h *RecommendationHandler) UpdatePreferences(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	prefs, err := h.preferenceService.Update(c.Request.Context(), userID, service.PreferenceUpdate{
		FitnessLevel:      req.FitnessLevel,
		WorkoutPreference: req.WorkoutPreference,
		FitnessGoal:       req.FitnessGoal,
		WorkoutDuration:   req.WorkoutDuration,
		WorkoutFrequency:  req.WorkoutFrequency,
		Equipment:         req.Equipment,
		Limitations:       req.Limitations,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not update preferences")
		}
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// List returns the caller's generated recommendations, newest first.
func (h *RecommendationHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	recs, err := h.recommendationService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not list recommendations")
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Get returns one recommendation after an ownership check.
func (h *RecommendationHandler) Get(c *gin.Context) {
	userID, recID, ok := h.resolveIDs(c)
	if !ok {
		return
	}

	rec, err := h.recommendationService.Get(c.Request.Context(), userID, recID)
	if err != nil {
		h.writeRecommendationError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Generate derives a fresh plan from stored preferences and apparel
// history.
func (h *RecommendationHandler) Generate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	rec, err := h.recommendationService.Generate(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not generate recommendation")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Complete flips the recommendation's completion flag; repeating is a
// no-op.
func (h *RecommendationHandler) Complete(c *gin.Context) {
	userID, recID, ok := h.resolveIDs(c)
	if !ok {
		return
	}

	rec, err := h.recommendationService.Complete(c.Request.Context(), userID, recID)
	if err != nil {
		h.writeRecommendationError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RecommendationHandler) resolveIDs(c *gin.Context) (userID, recID int64, ok bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return 0, 0, false
	}

	recID, err = strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid recommendation id")
		return 0, 0, false
	}
	return userID, recID, true
}

func (h *RecommendationHandler) writeRecommendationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecommendationNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbiddenRecommendation):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "could not load recommendation")
	}
}
