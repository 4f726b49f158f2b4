package handlers

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the three role dashboards
type DashboardHandler struct {
	service services.DashboardServiceInterface
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Dashboard handles GET /dashboard, /mentordashboard and /admindashboard.
// The route's guard has already checked the role.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Dashboard(middleware.CurrentSession(c)))
}
