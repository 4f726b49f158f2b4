package models

// NavItem is one entry of a dashboard's navigation
type NavItem struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// DashboardView is the landing view of a role
type DashboardView struct {
	Role    Role      `json:"role"`
	UserID  int       `json:"userId"`
	Profile string    `json:"profile,omitempty"`
	Items   []NavItem `json:"items"`
}
