package services

import (
	"context"

	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/backend"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/logger"
	"go.uber.org/zap"
)

// ResourceBackend adds the mentor id lookup to the collection endpoints
type ResourceBackend interface {
	crud.Backend
	MentorID(ctx context.Context, userID int) (int, error)
}

var _ ResourceBackend = (*backend.Client)(nil)

// formLoadError is shown when the create-resource form could only be
// partially prepared.
const formLoadError = "Some form data could not be loaded. Please try again later."

// ResourceService serves the resource search, authoring and management views
type ResourceService struct {
	api Scoped[ResourceBackend]
}

var _ ResourceServiceInterface = (*ResourceService)(nil)

// NewResourceService creates a new ResourceService
func NewResourceService(api Scoped[ResourceBackend]) *ResourceService {
	return &ResourceService{api: api}
}

// List searches all resources by term and suggested skill
func (s *ResourceService) List(ctx context.Context, sess models.Session, term string, skillID int) (*models.ResourceListView, error) {
	api := s.api(sess.Token)

	resources, err := crud.Resources(api).List(ctx, 0)
	if err != nil {
		return nil, err
	}

	// the skill filter is a convenience; the list still renders without it
	skills, err := crud.Skills(api).List(ctx, 0)
	if err != nil {
		logger.Warn("Failed to load skills for resource filter", zap.Error(err))
		skills = []models.Skill{}
	}

	return &models.ResourceListView{
		Resources: crud.FilterResources(resources, term, skillID),
		Skills:    skills,
	}, nil
}

// Form prepares the create-resource form. It needs the skill catalog and the
// session user's mentor id; if either lookup fails the form comes back
// degraded with a generic error instead of failing outright.
func (s *ResourceService) Form(ctx context.Context, sess models.Session) *models.ResourceFormView {
	api := s.api(sess.Token)
	view := &models.ResourceFormView{Skills: []models.Skill{}}

	skills, err := crud.Skills(api).List(ctx, 0)
	if err != nil {
		logger.Warn("Failed to load skills for resource form", zap.Error(err))
		view.Error = formLoadError
	} else {
		view.Skills = skills
	}

	mentorID, err := api.MentorID(ctx, sess.UserID)
	if err != nil {
		logger.Warn("Failed to look up mentor id",
			zap.Int("user_id", sess.UserID),
			zap.Error(err))
		view.Error = formLoadError
	} else {
		view.MentorID = mentorID
	}

	return view
}

// Mine lists the resources the session user published as a mentor
func (s *ResourceService) Mine(ctx context.Context, sess models.Session) ([]models.Resource, error) {
	api := s.api(sess.Token)

	mentorID, err := api.MentorID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return crud.Resources(api).List(ctx, mentorID)
}

// Create publishes a resource under the session user's mentor id
func (s *ResourceService) Create(ctx context.Context, sess models.Session, req *models.CreateResourceRequest) (*models.Resource, error) {
	api := s.api(sess.Token)

	mentorID, err := api.MentorID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if mentorID <= 0 {
		return nil, apperrors.InvalidInputError("mentor_id", "could not be determined")
	}

	payload := *req
	payload.MentorID = mentorID

	resource, err := crud.Resources(api).Create(ctx, payload, nil)
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// Delete removes a resource
func (s *ResourceService) Delete(ctx context.Context, sess models.Session, resourceID int) error {
	return crud.Resources(s.api(sess.Token)).Delete(ctx, resourceID)
}
