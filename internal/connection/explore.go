package connection

import (
	"slices"
	"strings"

	"github.com/careerconnect/connect-client/internal/models"
)

// Explore filters the user directory for the "find people" view. Self and
// users already in the sent set are hidden, the search term matches names
// case-insensitively, and the tab narrows by account kind.
func Explore(users []models.User, selfID int, sent []int, term string, tab models.ExploreTab) []models.User {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]models.User, 0, len(users))
	for _, user := range users {
		if user.UserID == selfID || slices.Contains(sent, user.UserID) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(user.Name), term) {
			continue
		}
		switch tab {
		case models.TabMentors:
			if !user.IsMentor {
				continue
			}
		case models.TabStudents:
			if user.IsMentor {
				continue
			}
		}
		out = append(out, user)
	}
	return out
}

// ParseTab maps a query value onto a tab, defaulting to all
func ParseTab(s string) models.ExploreTab {
	switch models.ExploreTab(strings.ToLower(s)) {
	case models.TabMentors:
		return models.TabMentors
	case models.TabStudents:
		return models.TabStudents
	default:
		return models.TabAll
	}
}
