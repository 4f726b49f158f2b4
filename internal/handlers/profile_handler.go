package handlers

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles the edit-profile view
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile handles GET /editprofile/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), middleware.CurrentSession(c), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /editprofile/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.ProfileUpdateRequest
	if !bind(c, &req) {
		return
	}

	message, err := h.service.UpdateProfile(c.Request.Context(), middleware.CurrentSession(c), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
