package services

import (
	"context"
	"strconv"
	"time"

	"github.com/careerconnect/connect-client/internal/cache"
	"github.com/careerconnect/connect-client/internal/connection"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/session"
	"github.com/careerconnect/connect-client/pkg/backend"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ConnectionBackend is the part of the backend used by the connection views
type ConnectionBackend interface {
	connection.API
	ListUsers(ctx context.Context) ([]models.User, error)
}

var _ ConnectionBackend = (*backend.Client)(nil)

// workflowEntry binds a user's workflow to the token it was built with
type workflowEntry struct {
	token    string
	workflow *connection.Workflow
}

// ConnectionService keeps one connection.Workflow per signed-in user, so
// the pending and accepted lists survive between requests the way they
// survive between renders in a single client.
type ConnectionService struct {
	api       Scoped[ConnectionBackend]
	sent      *cache.SentRequestsCache
	workflows *gocache.Cache
}

var _ ConnectionServiceInterface = (*ConnectionService)(nil)

// NewConnectionService creates a new ConnectionService. Idle workflows are
// evicted after ttl, normally the session lifetime.
func NewConnectionService(api Scoped[ConnectionBackend], sent *cache.SentRequestsCache, ttl time.Duration) *ConnectionService {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &ConnectionService{
		api:       api,
		sent:      sent,
		workflows: gocache.New(ttl, 2*ttl),
	}
}

func workflowKey(userID int) string {
	return "workflow:" + strconv.Itoa(userID)
}

// workflow returns the user's workflow, rebuilding it when the session
// token changed since it was created.
func (s *ConnectionService) workflow(sess models.Session) *connection.Workflow {
	key := workflowKey(sess.UserID)
	if cached, found := s.workflows.Get(key); found {
		if entry, ok := cached.(*workflowEntry); ok && entry.token == sess.Token {
			metrics.CacheHits.WithLabelValues("workflows").Inc()
			s.workflows.SetDefault(key, entry)
			return entry.workflow
		}
	}
	metrics.CacheMisses.WithLabelValues("workflows").Inc()

	entry := &workflowEntry{
		token:    sess.Token,
		workflow: connection.NewWorkflow(s.api(sess.Token), s.sent.ForUser(sess.UserID)),
	}
	s.workflows.SetDefault(key, entry)
	return entry.workflow
}

// Forget drops the user's workflow, e.g. on logout
func (s *ConnectionService) Forget(userID int) {
	s.workflows.Delete(workflowKey(userID))
}

// Explore lists the users the session can still send a request to
func (s *ConnectionService) Explore(ctx context.Context, sess models.Session, term string, tab models.ExploreTab) (*models.ExploreView, error) {
	users, err := s.api(sess.Token).ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	sent := s.sent.ForUser(sess.UserID).List()
	filtered := connection.Explore(users, sess.UserID, sent, term, tab)

	logger.Debug("Explore list built",
		zap.Int("user_id", sess.UserID),
		zap.Int("total", len(users)),
		zap.Int("shown", len(filtered)))

	return &models.ExploreView{Tab: tab, Term: term, Users: filtered}, nil
}

// SendRequest sends a connection request from the session user
func (s *ConnectionService) SendRequest(ctx context.Context, sess models.Session, receiverID int) error {
	return s.workflow(sess).Send(ctx, sess.UserID, receiverID)
}

// IncomingRequests lists the pending requests addressed to the session user
func (s *ConnectionService) IncomingRequests(ctx context.Context, sess models.Session) (*models.RequestsView, error) {
	requests, err := s.workflow(sess).ListIncoming(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return &models.RequestsView{Requests: requests}, nil
}

// Decide accepts or rejects a pending request and returns what is left
func (s *ConnectionService) Decide(ctx context.Context, sess models.Session, connectionID int, action models.DecisionAction) (*models.RequestsView, error) {
	wf := s.workflow(sess)
	if err := wf.Decide(ctx, connectionID, action); err != nil {
		return nil, err
	}
	return &models.RequestsView{Requests: wf.Pending()}, nil
}

// Connections lists the session user's accepted connections
func (s *ConnectionService) Connections(ctx context.Context, sess models.Session) (*models.ConnectionsView, error) {
	accepted, err := s.workflow(sess).ListAccepted(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return &models.ConnectionsView{Connections: accepted}, nil
}

// Disconnect removes an accepted connection and returns what is left
func (s *ConnectionService) Disconnect(ctx context.Context, sess models.Session, connectionID int) (*models.ConnectionsView, error) {
	wf := s.workflow(sess)
	if err := wf.Disconnect(ctx, sess.UserID, connectionID); err != nil {
		return nil, err
	}
	return &models.ConnectionsView{Connections: wf.Accepted()}, nil
}
