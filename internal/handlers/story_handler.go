package handlers

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/gin-gonic/gin"
)

// StoryHandler serves the story views
type StoryHandler struct {
	service services.StoryServiceInterface
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(service services.StoryServiceInterface) *StoryHandler {
	return &StoryHandler{service: service}
}

// List handles GET /stories
func (h *StoryHandler) List(c *gin.Context) {
	h.list(c, 0)
}

// UserStories handles GET /stories/:id
func (h *StoryHandler) UserStories(c *gin.Context) {
	authorID, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.list(c, authorID)
}

// Manage handles GET /managestories, the session user's own stories
func (h *StoryHandler) Manage(c *gin.Context) {
	h.list(c, middleware.CurrentSession(c).UserID)
}

func (h *StoryHandler) list(c *gin.Context, authorID int) {
	stories, err := h.service.List(c.Request.Context(), middleware.CurrentSession(c), authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

// Get handles GET /story/:storyId
func (h *StoryHandler) Get(c *gin.Context) {
	storyID, ok := paramID(c, "storyId")
	if !ok {
		return
	}

	story, err := h.service.Get(c.Request.Context(), middleware.CurrentSession(c), storyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"story": story})
}

// Create handles POST /addstory (multipart with optional thumbnail)
func (h *StoryHandler) Create(c *gin.Context) {
	var req models.CreateStoryRequest
	if !bind(c, &req) {
		return
	}

	thumbnail, err := formAttachment(c, "thumbnail")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid thumbnail", err)
		return
	}

	story, err := h.service.Create(c.Request.Context(), middleware.CurrentSession(c), &req, thumbnail)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"story": story})
}

// Delete handles DELETE /managestories/:storyId
func (h *StoryHandler) Delete(c *gin.Context) {
	storyID, ok := paramID(c, "storyId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentSession(c), storyID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
