package services

import (
	"context"
	"fmt"
	"time"

	"github.com/careerconnect/connect-client/internal/guard"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/session"
	"github.com/careerconnect/connect-client/pkg/backend"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	"github.com/careerconnect/connect-client/pkg/validation"
	"go.uber.org/zap"
)

// AuthBackend is the part of the backend used for authentication
type AuthBackend interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest, profilePic *backend.Attachment) (string, error)
}

var _ AuthBackend = (*backend.Client)(nil)

// AuthService turns backend credentials into a client session
type AuthService struct {
	api AuthBackend
}

var _ AuthServiceInterface = (*AuthService)(nil)

// NewAuthService creates a new AuthService
func NewAuthService(api AuthBackend) *AuthService {
	return &AuthService{api: api}
}

// Login authenticates against the backend and stores the session. The
// returned view names the landing route for the role.
func (s *AuthService) Login(ctx context.Context, store session.Store, req *models.LoginRequest) (*models.LoginView, error) {
	start := time.Now()

	if err := validation.Struct(req); err != nil {
		metrics.SessionLogins.WithLabelValues("invalid").Inc()
		return nil, err
	}

	resp, err := s.api.Login(ctx, *req)
	if err != nil {
		metrics.SessionLogins.WithLabelValues("error").Inc()
		return nil, err
	}

	role := models.Role(resp.Role)
	if resp.Token == "" || resp.UserID <= 0 || role == "" {
		metrics.SessionLogins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w: incomplete credentials in response", apperrors.ErrServer)
	}
	if !role.Valid() {
		metrics.SessionLogins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w: unknown role %q", apperrors.ErrServer, resp.Role)
	}

	if err := store.Login(resp.Token, role, resp.Profile, resp.UserID); err != nil {
		metrics.SessionLogins.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SessionLogins.WithLabelValues("success").Inc()
	logger.Info("User logged in",
		zap.Int("user_id", resp.UserID),
		zap.String("role", resp.Role),
		zap.Duration("duration", time.Since(start)))

	return &models.LoginView{
		Success:    true,
		Role:       role,
		UserID:     resp.UserID,
		Profile:    resp.Profile,
		RedirectTo: guard.LandingFor(role),
	}, nil
}

// Register creates an account. The user still has to log in afterwards.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest, profilePic *backend.Attachment) (string, error) {
	if err := validation.Struct(req); err != nil {
		return "", err
	}

	message, err := s.api.Register(ctx, *req, profilePic)
	if err != nil {
		return "", err
	}

	logger.Info("User registered", zap.String("role", req.Role))
	if message == "" {
		message = "Registration successful. Please log in."
	}
	return message, nil
}

// Logout clears the session. It never calls the backend.
func (s *AuthService) Logout(store session.Store) error {
	userID := store.Get().UserID
	if err := store.Logout(); err != nil {
		return err
	}
	if userID > 0 {
		logger.Info("User logged out", zap.Int("user_id", userID))
	}
	return nil
}
