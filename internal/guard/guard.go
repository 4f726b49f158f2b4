// Package guard decides whether a session may open a protected view.
package guard

import (
	"slices"

	"github.com/careerconnect/connect-client/internal/models"
)

// Well-known views
const (
	LandingPath          = "/"
	LoginPath            = "/login"
	StudentDashboardPath = "/dashboard"
	MentorDashboardPath  = "/mentordashboard"
	AdminDashboardPath   = "/admindashboard"
)

// Redirect reasons, also used as metric labels
const (
	ReasonAnonymous = "anonymous"
	ReasonWrongRole = "wrong_role"
)

// Rule describes a protected view. An empty Roles list admits any
// authenticated session.
type Rule struct {
	Path  string
	Roles []models.Role
}

// Authenticated returns a rule admitting every logged-in role
func Authenticated(path string) Rule {
	return Rule{Path: path}
}

// RoleOnly returns a rule admitting only the given roles
func RoleOnly(path string, roles ...models.Role) Rule {
	return Rule{Path: path, Roles: roles}
}

// Decision is the outcome of Evaluate
type Decision struct {
	Allowed    bool
	RedirectTo string
	Reason     string
}

// Evaluate checks sess against rule. It never blocks and has no side
// effects, so it can be re-run whenever the session changes.
func Evaluate(sess models.Session, rule Rule) Decision {
	if !sess.IsAuthenticated() {
		return Decision{RedirectTo: LandingPath, Reason: ReasonAnonymous}
	}

	if len(rule.Roles) == 0 || slices.Contains(rule.Roles, sess.Role) {
		return Decision{Allowed: true}
	}

	target := LandingFor(sess.Role)
	if target == rule.Path {
		target = LoginPath
	}
	return Decision{RedirectTo: target, Reason: ReasonWrongRole}
}

// LandingFor returns the dashboard a role lands on after login
func LandingFor(role models.Role) string {
	switch role {
	case models.RoleMentor:
		return MentorDashboardPath
	case models.RoleAdmin:
		return AdminDashboardPath
	default:
		return StudentDashboardPath
	}
}
