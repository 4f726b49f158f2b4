package services

import (
	"context"

	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/models"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
)

// SkillService serves the admin skill catalog and the user's skill list
type SkillService struct {
	api Scoped[crud.Backend]
}

var _ SkillServiceInterface = (*SkillService)(nil)

// NewSkillService creates a new SkillService
func NewSkillService(api Scoped[crud.Backend]) *SkillService {
	return &SkillService{api: api}
}

// Catalog lists every skill. It needs no session.
func (s *SkillService) Catalog(ctx context.Context) ([]models.Skill, error) {
	return crud.Skills(s.api("")).List(ctx, 0)
}

// AddSkill adds a skill to the catalog
func (s *SkillService) AddSkill(ctx context.Context, sess models.Session, req *models.AddSkillRequest) (*models.Skill, error) {
	skill, err := crud.Skills(s.api(sess.Token)).Create(ctx, *req, nil)
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// DeleteSkill removes a skill from the catalog
func (s *SkillService) DeleteSkill(ctx context.Context, sess models.Session, skillID int) error {
	return crud.Skills(s.api(sess.Token)).Delete(ctx, skillID)
}

// UserSkills returns the user's skills and the catalog entries matching
// term that the user can still add.
func (s *SkillService) UserSkills(ctx context.Context, sess models.Session, userID int, term string) (*models.UserSkillsView, error) {
	if err := ownsUser(sess, userID); err != nil {
		return nil, err
	}

	api := s.api(sess.Token)
	assigned, err := crud.UserSkills(api, userID).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := crud.Skills(api).List(ctx, 0)
	if err != nil {
		return nil, err
	}

	return &models.UserSkillsView{
		Assigned:  assigned,
		Available: crud.FilterSkills(all, assigned, term),
	}, nil
}

// AssignSkill adds a catalog skill to the user and returns the refreshed view
func (s *SkillService) AssignSkill(ctx context.Context, sess models.Session, userID, skillID int) (*models.UserSkillsView, error) {
	if err := ownsUser(sess, userID); err != nil {
		return nil, err
	}

	api := s.api(sess.Token)
	owned := crud.UserSkills(api, userID)
	if _, err := owned.Create(ctx, models.AssignSkillRequest{SkillID: skillID}, nil); err != nil {
		return nil, err
	}

	all, err := crud.Skills(api).List(ctx, 0)
	if err != nil {
		return nil, err
	}
	assigned := owned.Items()
	return &models.UserSkillsView{
		Assigned:  assigned,
		Available: crud.FilterSkills(all, assigned, ""),
	}, nil
}

// RemoveSkill takes a skill away from the user
func (s *SkillService) RemoveSkill(ctx context.Context, sess models.Session, userID, skillID int) error {
	if err := ownsUser(sess, userID); err != nil {
		return err
	}
	if skillID <= 0 {
		return apperrors.InvalidInputError("skillId", "is required")
	}
	return crud.UserSkills(s.api(sess.Token), userID).Delete(ctx, skillID)
}

func ownsUser(sess models.Session, userID int) error {
	if userID <= 0 {
		return apperrors.InvalidInputError("id", "must be a positive number")
	}
	if userID != sess.UserID {
		return ErrNotOwner
	}
	return nil
}
