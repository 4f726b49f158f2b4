package services

import (
	"context"

	"github.com/careerconnect/connect-client/internal/messaging"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/session"
	"github.com/careerconnect/connect-client/pkg/backend"
)

// Scoped builds a backend view that acts with the given session token
type Scoped[T any] func(token string) T

// AuthServiceInterface defines login, registration and logout
type AuthServiceInterface interface {
	Login(ctx context.Context, store session.Store, req *models.LoginRequest) (*models.LoginView, error)
	Register(ctx context.Context, req *models.RegisterRequest, profilePic *backend.Attachment) (string, error)
	Logout(store session.Store) error
}

// DashboardServiceInterface defines the per-role landing view
type DashboardServiceInterface interface {
	Dashboard(sess models.Session) *models.DashboardView
}

// ProfileServiceInterface defines profile view and edit
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, sess models.Session, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, sess models.Session, userID int, req *models.ProfileUpdateRequest) (string, error)
}

// ConnectionServiceInterface defines the connection request views
type ConnectionServiceInterface interface {
	Explore(ctx context.Context, sess models.Session, term string, tab models.ExploreTab) (*models.ExploreView, error)
	SendRequest(ctx context.Context, sess models.Session, receiverID int) error
	IncomingRequests(ctx context.Context, sess models.Session) (*models.RequestsView, error)
	Decide(ctx context.Context, sess models.Session, connectionID int, action models.DecisionAction) (*models.RequestsView, error)
	Connections(ctx context.Context, sess models.Session) (*models.ConnectionsView, error)
	Disconnect(ctx context.Context, sess models.Session, connectionID int) (*models.ConnectionsView, error)
	Forget(userID int)
}

// MessagingServiceInterface defines the conversation views
type MessagingServiceInterface interface {
	Thread(ctx context.Context, sess models.Session, peerID int) (*models.ThreadView, error)
	Send(ctx context.Context, sess models.Session, peerID int, content string) error
	Open(sess models.Session, peerID int) *messaging.Poller
}

// SkillServiceInterface defines the skill catalog and user skill views
type SkillServiceInterface interface {
	Catalog(ctx context.Context) ([]models.Skill, error)
	AddSkill(ctx context.Context, sess models.Session, req *models.AddSkillRequest) (*models.Skill, error)
	DeleteSkill(ctx context.Context, sess models.Session, skillID int) error
	UserSkills(ctx context.Context, sess models.Session, userID int, term string) (*models.UserSkillsView, error)
	AssignSkill(ctx context.Context, sess models.Session, userID, skillID int) (*models.UserSkillsView, error)
	RemoveSkill(ctx context.Context, sess models.Session, userID, skillID int) error
}

// StoryServiceInterface defines the story views
type StoryServiceInterface interface {
	List(ctx context.Context, sess models.Session, authorID int) ([]models.Story, error)
	Get(ctx context.Context, sess models.Session, storyID int) (*models.Story, error)
	Create(ctx context.Context, sess models.Session, req *models.CreateStoryRequest, thumbnail *backend.Attachment) (*models.Story, error)
	Delete(ctx context.Context, sess models.Session, storyID int) error
}

// ResourceServiceInterface defines the resource views
type ResourceServiceInterface interface {
	List(ctx context.Context, sess models.Session, term string, skillID int) (*models.ResourceListView, error)
	Form(ctx context.Context, sess models.Session) *models.ResourceFormView
	Mine(ctx context.Context, sess models.Session) ([]models.Resource, error)
	Create(ctx context.Context, sess models.Session, req *models.CreateResourceRequest) (*models.Resource, error)
	Delete(ctx context.Context, sess models.Session, resourceID int) error
}

// JobServiceInterface defines the job listings view
type JobServiceInterface interface {
	List(ctx context.Context, sess models.Session) (*models.JobsView, error)
	Create(ctx context.Context, sess models.Session, req *models.CreateJobRequest) (*models.JobPosting, error)
	Delete(ctx context.Context, sess models.Session, jobID int) error
}
