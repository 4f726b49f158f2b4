package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerconnect/connect-client/internal/models"
)

// Skills returns the skill catalog
func (c *Client) Skills(ctx context.Context) ([]models.Skill, error) {
	var resp models.SkillsResponse
	if err := c.getJSON(ctx, "listSkills", "/api/skills/all", &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

// AddSkill adds a catalog entry. The backend may answer without the created
// skill, in which case the zero Skill is returned.
func (c *Client) AddSkill(ctx context.Context, req models.AddSkillRequest) (models.Skill, error) {
	var resp models.SkillResponse
	if err := c.sendJSON(ctx, "addSkill", http.MethodPost, "/api/skills/add", req, &resp); err != nil {
		return models.Skill{}, err
	}
	return resp.Skill, nil
}

// DeleteSkill removes a catalog entry
func (c *Client) DeleteSkill(ctx context.Context, skillID int) error {
	return c.deleteJSON(ctx, "deleteSkill", fmt.Sprintf("/api/skills/delete/%d", skillID), nil)
}

// UserSkills returns the skills assigned to userID
func (c *Client) UserSkills(ctx context.Context, userID int) ([]models.Skill, error) {
	var resp models.SkillsResponse
	if err := c.getJSON(ctx, "listUserSkills", fmt.Sprintf("/api/userskills/fetch/%d", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

// AssignSkill links a catalog skill to a user
func (c *Client) AssignSkill(ctx context.Context, req models.AssignSkillRequest) error {
	return c.sendJSON(ctx, "assignSkill", http.MethodPost, "/api/userskills/assign", req, nil)
}

// RemoveUserSkill unlinks a skill from a user
func (c *Client) RemoveUserSkill(ctx context.Context, userID, skillID int) error {
	return c.deleteJSON(ctx, "removeUserSkill", fmt.Sprintf("/api/userskills/remove/%d/%d", userID, skillID), nil)
}
