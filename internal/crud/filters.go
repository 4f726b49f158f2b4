package crud

import (
	"strings"

	"github.com/careerconnect/connect-client/internal/models"
)

// FilterSkills returns catalog skills whose name contains term and that the
// user does not have yet.
func FilterSkills(all, assigned []models.Skill, term string) []models.Skill {
	owned := make(map[int]struct{}, len(assigned))
	for _, s := range assigned {
		owned[s.SkillID] = struct{}{}
	}

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Skill, 0, len(all))
	for _, s := range all {
		if _, ok := owned[s.SkillID]; ok {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(s.SkillName), term) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterResources matches term against name or description and, when
// skillID is set, keeps only resources suggested for that skill.
func FilterResources(resources []models.Resource, term string, skillID int) []models.Resource {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Resource, 0, len(resources))
	for _, r := range resources {
		if skillID > 0 && r.SuggestedSkill != skillID {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.ResourceName), term) &&
			!strings.Contains(strings.ToLower(r.ResourceDescription), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}
