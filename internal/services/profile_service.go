package services

import (
	"context"
	"errors"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/backend"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/validation"
	"go.uber.org/zap"
)

// ErrNotOwner is returned when a user tries to edit another user's data
var ErrNotOwner = errors.New("not the owner of this resource")

// ProfileBackend is the part of the backend used for profiles
type ProfileBackend interface {
	GetUser(ctx context.Context, userID int) (*models.User, error)
	UpdateUser(ctx context.Context, userID int, req models.ProfileUpdateRequest) (string, error)
}

var _ ProfileBackend = (*backend.Client)(nil)

// ProfileService handles the edit-profile view
type ProfileService struct {
	api Scoped[ProfileBackend]
}

var _ ProfileServiceInterface = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService
func NewProfileService(api Scoped[ProfileBackend]) *ProfileService {
	return &ProfileService{api: api}
}

// GetProfile loads a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, sess models.Session, userID int) (*models.User, error) {
	if userID <= 0 {
		return nil, apperrors.InvalidInputError("id", "must be a positive number")
	}
	return s.api(sess.Token).GetUser(ctx, userID)
}

// UpdateProfile saves the session user's own profile and returns the
// backend's confirmation message.
func (s *ProfileService) UpdateProfile(ctx context.Context, sess models.Session, userID int, req *models.ProfileUpdateRequest) (string, error) {
	if userID != sess.UserID {
		logger.Warn("Rejected profile edit for another user",
			zap.Int("user_id", sess.UserID),
			zap.Int("target_id", userID))
		return "", ErrNotOwner
	}
	if err := validation.Struct(req); err != nil {
		return "", err
	}

	message, err := s.api(sess.Token).UpdateUser(ctx, userID, *req)
	if err != nil {
		return "", err
	}
	if message == "" {
		message = "Profile updated successfully."
	}
	return message, nil
}
