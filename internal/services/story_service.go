package services

import (
	"context"

	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/backend"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/sanitize"
)

// StoryBackend adds the single-story lookup to the collection endpoints
type StoryBackend interface {
	crud.Backend
	Story(ctx context.Context, storyID int) (*models.Story, error)
}

var _ StoryBackend = (*backend.Client)(nil)

// StoryService serves the story list, detail and authoring views
type StoryService struct {
	api Scoped[StoryBackend]
}

var _ StoryServiceInterface = (*StoryService)(nil)

// NewStoryService creates a new StoryService
func NewStoryService(api Scoped[StoryBackend]) *StoryService {
	return &StoryService{api: api}
}

// List returns every story, or one author's when authorID is set
func (s *StoryService) List(ctx context.Context, sess models.Session, authorID int) ([]models.Story, error) {
	return crud.Stories(s.api(sess.Token)).List(ctx, authorID)
}

// Get returns one story with its body sanitized for rendering
func (s *StoryService) Get(ctx context.Context, sess models.Session, storyID int) (*models.Story, error) {
	if storyID <= 0 {
		return nil, apperrors.InvalidInputError("story_id", "must be a positive number")
	}

	story, err := s.api(sess.Token).Story(ctx, storyID)
	if err != nil {
		return nil, err
	}
	story.Content = sanitize.RichText(story.Content)
	return story, nil
}

// Create publishes a story authored by the session user
func (s *StoryService) Create(ctx context.Context, sess models.Session, req *models.CreateStoryRequest, thumbnail *backend.Attachment) (*models.Story, error) {
	payload := *req
	payload.AuthorID = sess.UserID

	story, err := crud.Stories(s.api(sess.Token)).Create(ctx, payload, thumbnail)
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// Delete removes a story
func (s *StoryService) Delete(ctx context.Context, sess models.Session, storyID int) error {
	return crud.Stories(s.api(sess.Token)).Delete(ctx, storyID)
}
