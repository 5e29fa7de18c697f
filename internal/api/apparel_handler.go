package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wolfpack/fitness-hub/internal/service"

	"github.com/gin-gonic/gin"
)

// ApparelHandler serves garment registration and insight routes.
type ApparelHandler struct {
	apparelService service.ApparelService
	workoutService service.WorkoutService
}

// NewApparelHandler creates a new ApparelHandler.
func NewApparelHandler(apparelService service.ApparelService, workoutService service.WorkoutService) *ApparelHandler {
	return &ApparelHandler{
		apparelService: apparelService,
		workoutService: workoutService,
	}
}

type RegisterApparelRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// Register creates a garment owned by the caller.
func (h *ApparelHandler) Register(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	var req RegisterApparelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	apparel, err := h.apparelService.Register(c.Request.Context(), userID, req.Name, req.Type)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not register apparel")
		}
		return
	}
	c.JSON(http.StatusCreated, apparel)
}

// List returns the caller's garments.
func (h *ApparelHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	apparel, err := h.apparelService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not list apparel")
		return
	}
	c.JSON(http.StatusOK, apparel)
}

// Get returns one garment after an ownership check.
func (h *ApparelHandler) Get(c *gin.Context) {
	userID, apparelID, ok := h.resolveIDs(c)
	if !ok {
		return
	}

	apparel, err := h.apparelService.Get(c.Request.Context(), userID, apparelID)
	if err != nil {
		h.writeApparelError(c, err)
		return
	}
	c.JSON(http.StatusOK, apparel)
}

// Stats returns the garment's usage and performance aggregate.
func (h *ApparelHandler) Stats(c *gin.Context) {
	userID, apparelID, ok := h.resolveIDs(c)
	if !ok {
		return
	}

	stats, err := h.apparelService.Stats(c.Request.Context(), userID, apparelID)
	if err != nil {
		h.writeApparelError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Workouts returns the workouts that referenced this garment, newest first.
func (h *ApparelHandler) Workouts(c *gin.Context) {
	userID, apparelID, ok := h.resolveIDs(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	workouts, err := h.workoutService.ListByApparel(c.Request.Context(), userID, apparelID, limit)
	if err != nil {
		h.writeApparelError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// MostUsed returns the caller's garments ranked by usage count.
func (h *ApparelHandler) MostUsed(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	apparel, err := h.apparelService.MostUsed(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not rank apparel")
		return
	}
	c.JSON(http.StatusOK, apparel)
}

// BestPerforming returns the caller's garments ranked by performance
// rating.
func (h *ApparelHandler) BestPerforming(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	apparel, err := h.apparelService.BestPerforming(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not rank apparel")
		return
	}
	c.JSON(http.StatusOK, apparel)
}

func (h *ApparelHandler) resolveIDs(c *gin.Context) (userID, apparelID int64, ok bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return 0, 0, false
	}

	apparelID, err = strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid apparel id")
		return 0, 0, false
	}
	return userID, apparelID, true
}

func (h *ApparelHandler) writeApparelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApparelNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbiddenApparelAccess):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "could not load apparel")
	}
}
