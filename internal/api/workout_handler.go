package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wolfpack/fitness-hub/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves workout logging and history routes.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type CreateWorkoutRequest struct {
	Type      string `json:"type" binding:"required"`
	Duration  int    `json:"duration" binding:"required,gt=0"`
	Calories  int    `json:"calories" binding:"gte=0"`
	Notes     string `json:"notes"`
	ApparelID *int64 `json:"apparelId"`
}

// Create logs a workout; points, apparel aggregates and achievements update
// within the same call.
func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), userID, service.WorkoutInput{
		Type:      req.Type,
		Duration:  req.Duration,
		Calories:  req.Calories,
		Notes:     req.Notes,
		ApparelID: req.ApparelID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrApparelNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbiddenApparelAccess):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "could not create workout")
		}
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// List returns the user's workouts, newest first.
func (h *WorkoutHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	workouts, err := h.workoutService.List(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not list workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// Stats returns aggregate totals for the user's workout history.
func (h *WorkoutHandler) Stats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	stats, err := h.workoutService.Stats(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not compute workout stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
