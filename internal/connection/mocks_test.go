package connection

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) SendConnectionRequest(ctx context.Context, senderID, receiverID int) error {
	args := m.Called(ctx, senderID, receiverID)
	return args.Error(0)
}

func (m *MockAPI) PendingRequests(ctx context.Context, userID int) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *MockAPI) Connections(ctx context.Context, userID int) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *MockAPI) DecideConnection(ctx context.Context, connectionID int, action models.DecisionAction) error {
	args := m.Called(ctx, connectionID, action)
	return args.Error(0)
}

type memorySentSet struct {
	mu  sync.Mutex
	ids []int
}

func (s *memorySentSet) Has(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, id)
}

func (s *memorySentSet) Add(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.ids, id) {
		s.ids = append(s.ids, id)
	}
	return nil
}

func (s *memorySentSet) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = slices.DeleteFunc(s.ids, func(v int) bool { return v == id })
	return nil
}

func (s *memorySentSet) List() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]int(nil), s.ids...)
	sort.Ints(out)
	return out
}
