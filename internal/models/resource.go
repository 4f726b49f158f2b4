package models

// ResourceType is the kind of learning resource
type ResourceType string

const (
	ResourceArticle ResourceType = "article"
	ResourceVideo   ResourceType = "video"
	ResourcePDF     ResourceType = "pdf"
	ResourceCourse  ResourceType = "course"
)

// Resource is a learning resource published by a mentor
type Resource struct {
	ResourceID          int          `json:"resource_id"`
	Type                ResourceType `json:"type"`
	ResourceName        string       `json:"resource_name"`
	ResourceDescription string       `json:"resource_description"`
	Content             string       `json:"content,omitempty"`
	SuggestedSkill      int          `json:"suggested_skill,omitempty"`
	MentorID            int          `json:"mentor_id,omitempty"`
}

// CreateResourceRequest is the payload for POST /api/resources/add
type CreateResourceRequest struct {
	Type                ResourceType `json:"type" binding:"required,oneof=article video pdf course" validate:"required,oneof=article video pdf course"`
	ResourceName        string       `json:"resource_name" binding:"required,max=200" validate:"required,max=200"`
	ResourceDescription string       `json:"resource_description" binding:"required,max=1000" validate:"required,max=1000"`
	Content             string       `json:"content" binding:"required" validate:"required"`
	SuggestedSkill      int          `json:"suggested_skill" binding:"required,gt=0" validate:"required,gt=0"`
	MentorID            int          `json:"mentor_id" validate:"required,gt=0"`
}

// ResourcesResponse wraps GET /api/resources/
type ResourcesResponse struct {
	Resources []Resource `json:"resources"`
}

// ResourceResponse wraps the create response
type ResourceResponse struct {
	Resource Resource `json:"resource"`
}

// MentorLookupResponse wraps GET /api/mentorconnections/mentors/:userId
type MentorLookupResponse struct {
	Mentor struct {
		MentorID int `json:"mentor_id"`
	} `json:"mentor"`
}

// EntityID identifies the resource in a collection
func (r Resource) EntityID() int { return r.ResourceID }

// ResourceFormView backs the create-resource form. When one of its lookups
// fails the form is still returned, degraded, with Error set.
type ResourceFormView struct {
	Skills   []Skill `json:"skills"`
	MentorID int     `json:"mentorId,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// ResourceListView is the searchable resources view
type ResourceListView struct {
	Resources []Resource `json:"resources"`
	Skills    []Skill    `json:"skills"`
}
