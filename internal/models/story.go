package models

import "time"

// Story is a published article
type Story struct {
	StoryID            int        `json:"story_id"`
	StoryName          string     `json:"story_name"`
	StoryDescription   string     `json:"story_description"`
	Content            string     `json:"content,omitempty"`
	AuthorID           int        `json:"author,omitempty"`
	AuthorName         string     `json:"author_name,omitempty"`
	SuggestedSkillName string     `json:"suggested_skill_name,omitempty"`
	Thumbnail          string     `json:"thumbnail,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// CreateStoryRequest is the story form. Sent as multipart with an optional
// thumbnail.
type CreateStoryRequest struct {
	StoryName        string `form:"story_name" binding:"required,max=200" validate:"required,max=200"`
	StoryDescription string `form:"story_description" binding:"required,max=1000" validate:"required,max=1000"`
	Content          string `form:"content" binding:"required" validate:"required"`
	AuthorID         int    `form:"author" validate:"required,gt=0"`
	SuggestedSkill   int    `form:"suggested_skill" binding:"required,gt=0" validate:"required,gt=0"`
}

// StoriesResponse wraps GET /api/stories/
type StoriesResponse struct {
	Stories []Story `json:"stories"`
}

// StoryResponse wraps GET /api/stories/:id and the create response
type StoryResponse struct {
	Story Story `json:"story"`
}

// EntityID identifies the story in a collection
func (s Story) EntityID() int { return s.StoryID }
