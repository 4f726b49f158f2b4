package models

// Skill is a catalog entry
type Skill struct {
	SkillID   int    `json:"skill_id"`
	SkillName string `json:"skill_name"`
}

// AddSkillRequest is the payload for POST /api/skills/add
type AddSkillRequest struct {
	SkillName string `json:"skillName" binding:"required,max=100" validate:"required,max=100"`
}

// AssignSkillRequest is the payload for POST /api/userskills/assign
type AssignSkillRequest struct {
	UserID  int `json:"userId"`
	SkillID int `json:"skillId" binding:"required,gt=0" validate:"required,gt=0"`
}

// SkillsResponse wraps GET /api/skills/all and GET /api/userskills/fetch/:id
type SkillsResponse struct {
	Skills []Skill `json:"skills"`
}

// SkillResponse wraps the result of adding a skill
type SkillResponse struct {
	Skill Skill `json:"skill"`
}

// EntityID identifies the skill in a collection
func (s Skill) EntityID() int { return s.SkillID }

// UserSkillsView is the "manage skills" view: what the user has and what
// they can still add.
type UserSkillsView struct {
	Assigned  []Skill `json:"assigned"`
	Available []Skill `json:"available"`
}
