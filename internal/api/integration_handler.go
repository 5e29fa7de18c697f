package api

import (
	"errors"
	"fmt"
	"net/http"

	"wolfpack/fitness-hub/internal/service"

	"github.com/gin-gonic/gin"
)

// IntegrationHandler serves third-party app connection routes.
type IntegrationHandler struct {
	integrationService service.IntegrationService
}

// NewIntegrationHandler creates a new IntegrationHandler.
func NewIntegrationHandler(integrationService service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{integrationService: integrationService}
}

type ConnectAppRequest struct {
	AppName      string `json:"appName" binding:"required"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// List returns the caller's app connections.
func (h *IntegrationHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	apps, err := h.integrationService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not list integrations")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Connect creates or refreshes an app connection.
func (h *IntegrationHandler) Connect(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	var req ConnectAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	app, err := h.integrationService.Connect(c.Request.Context(), userID, req.AppName, req.AccessToken, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not connect app")
		}
		return
	}
	c.JSON(http.StatusOK, app)
}

// Disconnect soft-disables a connection; disconnecting an unknown app is a
// no-op.
func (h *IntegrationHandler) Disconnect(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve session user")
		return
	}

	appName := c.Param("app")
	if err := h.integrationService.Disconnect(c.Request.Context(), userID, appName); err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "could not disconnect app")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "disconnected"})
}
