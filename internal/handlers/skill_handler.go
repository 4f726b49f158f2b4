package handlers

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/gin-gonic/gin"
)

// SkillHandler serves the admin skill catalog and the user's skills
type SkillHandler struct {
	service services.SkillServiceInterface
}

// NewSkillHandler creates a new SkillHandler
func NewSkillHandler(service services.SkillServiceInterface) *SkillHandler {
	return &SkillHandler{service: service}
}

// Catalog handles GET /admindashboard/skills
func (h *SkillHandler) Catalog(c *gin.Context) {
	skills, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// AddSkill handles POST /admindashboard/skills
func (h *SkillHandler) AddSkill(c *gin.Context) {
	var req models.AddSkillRequest
	if !bind(c, &req) {
		return
	}

	skill, err := h.service.AddSkill(c.Request.Context(), middleware.CurrentSession(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"skill": skill})
}

// DeleteSkill handles DELETE /admindashboard/skills/:skillId
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	skillID, ok := paramID(c, "skillId")
	if !ok {
		return
	}

	if err := h.service.DeleteSkill(c.Request.Context(), middleware.CurrentSession(c), skillID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UserSkills handles GET /addskills/:id?search=
func (h *SkillHandler) UserSkills(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.UserSkills(c.Request.Context(), middleware.CurrentSession(c), userID, c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// AssignSkill handles POST /addskills/:id with {"skillId": n}
func (h *SkillHandler) AssignSkill(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AssignSkillRequest
	if !bind(c, &req) {
		return
	}

	view, err := h.service.AssignSkill(c.Request.Context(), middleware.CurrentSession(c), userID, req.SkillID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RemoveSkill handles DELETE /addskills/:id/:skillId
func (h *SkillHandler) RemoveSkill(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	skillID, ok := paramID(c, "skillId")
	if !ok {
		return
	}

	if err := h.service.RemoveSkill(c.Request.Context(), middleware.CurrentSession(c), userID, skillID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
