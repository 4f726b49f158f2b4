package handlers

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/gin-gonic/gin"
)

// ResourceHandler serves the resource views
type ResourceHandler struct {
	service services.ResourceServiceInterface
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(service services.ResourceServiceInterface) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// List handles GET /resources?search=&skill=
func (h *ResourceHandler) List(c *gin.Context) {
	view, err := h.service.List(c.Request.Context(), middleware.CurrentSession(c), c.Query("search"), queryID(c, "skill"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Form handles GET /createresource. A partially loaded form is still a 200.
func (h *ResourceHandler) Form(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Form(c.Request.Context(), middleware.CurrentSession(c)))
}

// Create handles POST /createresource
func (h *ResourceHandler) Create(c *gin.Context) {
	var req models.CreateResourceRequest
	if !bind(c, &req) {
		return
	}

	resource, err := h.service.Create(c.Request.Context(), middleware.CurrentSession(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"resource": resource})
}

// Manage handles GET /manageresources
func (h *ResourceHandler) Manage(c *gin.Context) {
	resources, err := h.service.Mine(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// Delete handles DELETE /manageresources/:resourceId
func (h *ResourceHandler) Delete(c *gin.Context) {
	resourceID, ok := paramID(c, "resourceId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentSession(c), resourceID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
