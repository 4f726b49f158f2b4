package handlers

import (
	"context"

	"github.com/careerconnect/connect-client/internal/messaging"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/session"
	"github.com/careerconnect/connect-client/pkg/backend"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, store session.Store, req *models.LoginRequest) (*models.LoginView, error) {
	args := m.Called(ctx, store, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginView), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest, profilePic *backend.Attachment) (string, error) {
	args := m.Called(ctx, req, profilePic)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(store session.Store) error {
	args := m.Called(store)
	return args.Error(0)
}

// MockConnectionService is a mock implementation of ConnectionServiceInterface
type MockConnectionService struct {
	mock.Mock
}

func (m *MockConnectionService) Explore(ctx context.Context, sess models.Session, term string, tab models.ExploreTab) (*models.ExploreView, error) {
	args := m.Called(ctx, sess, term, tab)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExploreView), args.Error(1)
}

func (m *MockConnectionService) SendRequest(ctx context.Context, sess models.Session, receiverID int) error {
	args := m.Called(ctx, sess, receiverID)
	return args.Error(0)
}

func (m *MockConnectionService) IncomingRequests(ctx context.Context, sess models.Session) (*models.RequestsView, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RequestsView), args.Error(1)
}

func (m *MockConnectionService) Decide(ctx context.Context, sess models.Session, connectionID int, action models.DecisionAction) (*models.RequestsView, error) {
	args := m.Called(ctx, sess, connectionID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RequestsView), args.Error(1)
}

func (m *MockConnectionService) Connections(ctx context.Context, sess models.Session) (*models.ConnectionsView, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionsView), args.Error(1)
}

func (m *MockConnectionService) Disconnect(ctx context.Context, sess models.Session, connectionID int) (*models.ConnectionsView, error) {
	args := m.Called(ctx, sess, connectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionsView), args.Error(1)
}

func (m *MockConnectionService) Forget(userID int) {
	m.Called(userID)
}

// MockMessagingService is a mock implementation of MessagingServiceInterface
type MockMessagingService struct {
	mock.Mock
}

func (m *MockMessagingService) Thread(ctx context.Context, sess models.Session, peerID int) (*models.ThreadView, error) {
	args := m.Called(ctx, sess, peerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ThreadView), args.Error(1)
}

func (m *MockMessagingService) Send(ctx context.Context, sess models.Session, peerID int, content string) error {
	args := m.Called(ctx, sess, peerID, content)
	return args.Error(0)
}

func (m *MockMessagingService) Open(sess models.Session, peerID int) *messaging.Poller {
	args := m.Called(sess, peerID)
	return args.Get(0).(*messaging.Poller)
}

// MockResourceService is a mock implementation of ResourceServiceInterface
type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) List(ctx context.Context, sess models.Session, term string, skillID int) (*models.ResourceListView, error) {
	args := m.Called(ctx, sess, term, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResourceListView), args.Error(1)
}

func (m *MockResourceService) Form(ctx context.Context, sess models.Session) *models.ResourceFormView {
	args := m.Called(ctx, sess)
	return args.Get(0).(*models.ResourceFormView)
}

func (m *MockResourceService) Mine(ctx context.Context, sess models.Session) ([]models.Resource, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Resource), args.Error(1)
}

func (m *MockResourceService) Create(ctx context.Context, sess models.Session, req *models.CreateResourceRequest) (*models.Resource, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resource), args.Error(1)
}

func (m *MockResourceService) Delete(ctx context.Context, sess models.Session, resourceID int) error {
	args := m.Called(ctx, sess, resourceID)
	return args.Error(0)
}

// MockJobService is a mock implementation of JobServiceInterface
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) List(ctx context.Context, sess models.Session) (*models.JobsView, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobsView), args.Error(1)
}

func (m *MockJobService) Create(ctx context.Context, sess models.Session, req *models.CreateJobRequest) (*models.JobPosting, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobService) Delete(ctx context.Context, sess models.Session, jobID int) error {
	args := m.Called(ctx, sess, jobID)
	return args.Error(0)
}
