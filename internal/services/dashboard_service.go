package services

import (
	"fmt"

	"github.com/careerconnect/connect-client/internal/models"
)

// DashboardService builds the landing view of each role
type DashboardService struct{}

var _ DashboardServiceInterface = (*DashboardService)(nil)

// NewDashboardService creates a new DashboardService
func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// Dashboard lists the navigation items available to the session's role
func (s *DashboardService) Dashboard(sess models.Session) *models.DashboardView {
	return &models.DashboardView{
		Role:    sess.Role,
		UserID:  sess.UserID,
		Profile: sess.ProfileImagePath,
		Items:   navigationFor(sess.Role, sess.UserID),
	}
}

func navigationFor(role models.Role, userID int) []models.NavItem {
	profile := models.NavItem{Title: "Edit Profile", Path: fmt.Sprintf("/editprofile/%d", userID)}

	switch role {
	case models.RoleAdmin:
		return []models.NavItem{
			{Title: "Manage Skill Catalog", Path: "/admindashboard/skills"},
		}
	case models.RoleMentor:
		return []models.NavItem{
			profile,
			{Title: "Create Story", Path: "/addstory"},
			{Title: "Manage Stories", Path: "/managestories"},
			{Title: "Career Resources", Path: "/resources"},
			{Title: "Create Resource", Path: "/createresource"},
			{Title: "Manage Resources", Path: "/manageresources"},
			{Title: "Messages", Path: "/messages"},
		}
	default:
		return []models.NavItem{
			profile,
			{Title: "Manage Skills", Path: fmt.Sprintf("/addskills/%d", userID)},
			{Title: "Create Story", Path: "/addstory"},
			{Title: "Manage Stories", Path: "/managestories"},
			{Title: "Career Resources", Path: "/resources"},
			{Title: "Jobs", Path: "/jobs"},
			{Title: "Messages", Path: "/messages"},
		}
	}
}
