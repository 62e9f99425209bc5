// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/middleware"
	"github.com/festy23/street_sports/internal/user/model"
	"github.com/festy23/street_sports/internal/user/service"
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetMe handles GET /users/me request.
// @Summary Get the caller's profile
// @Tags Users
// @Produce json
// @Success 200 {object} model.ProfileResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /users/me [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetMe(c *gin.Context) {
	resp, err := h.service.GetMe(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMe handles PUT /users/me request.
// @Summary Update the caller's profile
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.UpdateProfileRequest true "Request"
// @Success 200 {object} model.ProfileResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /users/me [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateMe(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
