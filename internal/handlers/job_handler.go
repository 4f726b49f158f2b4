package handlers

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/gin-gonic/gin"
)

// JobHandler serves the job listings view
type JobHandler struct {
	service services.JobServiceInterface
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(service services.JobServiceInterface) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	view, err := h.service.List(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Create handles POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req models.CreateJobRequest
	if !bind(c, &req) {
		return
	}

	job, err := h.service.Create(c.Request.Context(), middleware.CurrentSession(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// Delete handles DELETE /jobs/:jobId
func (h *JobHandler) Delete(c *gin.Context) {
	jobID, ok := paramID(c, "jobId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentSession(c), jobID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
