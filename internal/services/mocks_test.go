package services_test

import (
	"context"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/backend"
	"github.com/stretchr/testify/mock"
)

// MockAuthBackend is a mock implementation of AuthBackend
type MockAuthBackend struct {
	mock.Mock
}

func (m *MockAuthBackend) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthBackend) Register(ctx context.Context, req models.RegisterRequest, profilePic *backend.Attachment) (string, error) {
	args := m.Called(ctx, req, profilePic)
	return args.String(0), args.Error(1)
}

// MockConnectionBackend is a mock implementation of ConnectionBackend
type MockConnectionBackend struct {
	mock.Mock
}

func (m *MockConnectionBackend) SendConnectionRequest(ctx context.Context, senderID, receiverID int) error {
	args := m.Called(ctx, senderID, receiverID)
	return args.Error(0)
}

func (m *MockConnectionBackend) PendingRequests(ctx context.Context, userID int) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionBackend) Connections(ctx context.Context, userID int) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionBackend) DecideConnection(ctx context.Context, connectionID int, action models.DecisionAction) error {
	args := m.Called(ctx, connectionID, action)
	return args.Error(0)
}

func (m *MockConnectionBackend) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockTransport is a mock implementation of messaging.Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) FetchThread(ctx context.Context, userID, peerID int) ([]models.Message, error) {
	args := m.Called(ctx, userID, peerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockTransport) SendMessage(ctx context.Context, senderID, receiverID int, content string) error {
	args := m.Called(ctx, senderID, receiverID, content)
	return args.Error(0)
}
