// Package connection mirrors the server-owned connection request workflow
// (pending, then accepted or rejected) for one client instance.
package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/careerconnect/connect-client/internal/models"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	"go.uber.org/zap"
)

var (
	// ErrAlreadySent is returned when the local sent set already holds the
	// receiver. No network call is made.
	ErrAlreadySent = fmt.Errorf("connection request already sent: %w", apperrors.ErrConflict)

	// ErrSendInFlight is returned while a send to the same receiver is running
	ErrSendInFlight = errors.New("connection request is being sent")

	// ErrDecisionInFlight is returned while the same connection is being decided
	ErrDecisionInFlight = errors.New("decision already in progress")
)

// API is the part of the backend the workflow talks to
type API interface {
	SendConnectionRequest(ctx context.Context, senderID, receiverID int) error
	PendingRequests(ctx context.Context, userID int) ([]models.ConnectionRequest, error)
	Connections(ctx context.Context, userID int) ([]models.ConnectionRequest, error)
	DecideConnection(ctx context.Context, connectionID int, action models.DecisionAction) error
}

// SentSet remembers receivers this client already sent a request to. It is
// a best-effort hint used to hide the "Connect" action. It is never
// authoritative: another device or cleared storage can resend, and the
// server answers with a conflict.
type SentSet interface {
	Has(receiverID int) bool
	Add(receiverID int) error
	Remove(receiverID int) error
	List() []int
}

// Workflow holds the pending and accepted lists of one user
type Workflow struct {
	api  API
	sent SentSet

	mu       sync.Mutex
	ownerID  int
	pending  []models.ConnectionRequest
	accepted []models.ConnectionRequest
	sending  map[int]struct{}
	deciding map[int]struct{}
}

// NewWorkflow creates a workflow over the backend API and a sent set
func NewWorkflow(api API, sent SentSet) *Workflow {
	return &Workflow{
		api:      api,
		sent:     sent,
		sending:  make(map[int]struct{}),
		deciding: make(map[int]struct{}),
	}
}

// Send asks the server to create a pending request from senderID to
// receiverID. The local sent set is consulted first.
func (w *Workflow) Send(ctx context.Context, senderID, receiverID int) error {
	if senderID <= 0 {
		return apperrors.InvalidInputError("sender", "is required")
	}
	if receiverID <= 0 {
		return apperrors.InvalidInputError("receiver", "is required")
	}
	if senderID == receiverID {
		return apperrors.InvalidInputError("receiver", "must be another user")
	}

	if w.sent.Has(receiverID) {
		metrics.ConnectionRequestsSent.WithLabelValues("suppressed").Inc()
		return ErrAlreadySent
	}

	w.mu.Lock()
	if _, busy := w.sending[receiverID]; busy {
		w.mu.Unlock()
		return ErrSendInFlight
	}
	w.sending[receiverID] = struct{}{}
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.sending, receiverID)
		w.mu.Unlock()
	}()

	err := w.api.SendConnectionRequest(ctx, senderID, receiverID)
	metrics.ConnectionRequestsSent.WithLabelValues(metrics.StatusLabel(err)).Inc()

	switch {
	case err == nil:
		logger.Info("Connection request sent",
			zap.Int("sender_id", senderID),
			zap.Int("receiver_id", receiverID))
		w.remember(receiverID)
		return nil
	case apperrors.Is(err, apperrors.ErrConflict):
		// The server already has a request for this pair; hide the action too.
		w.remember(receiverID)
		return err
	default:
		return err
	}
}

// ListIncoming fetches the requests waiting for userID's decision. Only
// pending requests are kept; server order is preserved.
func (w *Workflow) ListIncoming(ctx context.Context, userID int) ([]models.ConnectionRequest, error) {
	requests, err := w.api.PendingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending := make([]models.ConnectionRequest, 0, len(requests))
	for _, req := range requests {
		if req.State != "" && req.State != models.ConnectionPending {
			continue
		}
		req.State = models.ConnectionPending
		if req.ReceiverID == 0 {
			req.ReceiverID = userID
		}
		if req.SenderID == 0 {
			req.SenderID = req.UserID
		}
		pending = append(pending, req)
	}

	w.mu.Lock()
	w.ownerID = userID
	w.pending = pending
	w.mu.Unlock()

	return clone(pending), nil
}

// Decide posts one accept/reject decision. On success exactly that request
// leaves the pending list; on failure the list is untouched. Nothing is
// retried.
func (w *Workflow) Decide(ctx context.Context, connectionID int, action models.DecisionAction) error {
	if connectionID <= 0 {
		return apperrors.InvalidInputError("connection", "is required")
	}
	if !action.IsValid() {
		return apperrors.InvalidInputError("action", "must be accept or reject")
	}

	if !w.begin(connectionID) {
		return ErrDecisionInFlight
	}
	defer w.end(connectionID)

	err := w.api.DecideConnection(ctx, connectionID, action)
	metrics.ConnectionDecisions.WithLabelValues(string(action), metrics.StatusLabel(err)).Inc()
	if err != nil {
		return err
	}

	logger.Info("Connection request decided",
		zap.Int("connection_id", connectionID),
		zap.String("action", string(action)))

	w.mu.Lock()
	w.pending = without(w.pending, connectionID)
	w.mu.Unlock()
	return nil
}

// ListAccepted fetches userID's current connections. Every connected peer
// is also put in the sent set, which keeps the set reconciled with the
// server instead of trusting what was recorded earlier.
func (w *Workflow) ListAccepted(ctx context.Context, userID int) ([]models.ConnectionRequest, error) {
	connections, err := w.api.Connections(ctx, userID)
	if err != nil {
		return nil, err
	}

	accepted := make([]models.ConnectionRequest, 0, len(connections))
	for _, conn := range connections {
		if conn.State != "" && conn.State != models.ConnectionAccepted {
			continue
		}
		conn.State = models.ConnectionAccepted
		accepted = append(accepted, conn)
	}

	w.mu.Lock()
	w.ownerID = userID
	w.accepted = accepted
	w.mu.Unlock()

	for _, conn := range accepted {
		if peer := conn.PeerID(userID); peer > 0 && !w.sent.Has(peer) {
			w.remember(peer)
		}
	}

	return clone(accepted), nil
}

// Disconnect removes one of ownerID's accepted connections with a
// reject-style decision. On success it leaves the accepted list and the
// peer is forgotten in the sent set so the "Connect" action shows again.
// When the connection is not in the last fetched list, the list is fetched
// first so the peer is known.
func (w *Workflow) Disconnect(ctx context.Context, ownerID, connectionID int) error {
	if ownerID <= 0 {
		return apperrors.InvalidInputError("user", "is required")
	}
	if connectionID <= 0 {
		return apperrors.InvalidInputError("connection", "is required")
	}

	if !w.begin(connectionID) {
		return ErrDecisionInFlight
	}
	defer w.end(connectionID)

	peer, known := w.peerOf(ownerID, connectionID)
	if !known {
		if _, err := w.ListAccepted(ctx, ownerID); err != nil {
			return err
		}
		peer, _ = w.peerOf(ownerID, connectionID)
	}

	err := w.api.DecideConnection(ctx, connectionID, models.ActionReject)
	metrics.ConnectionDecisions.WithLabelValues("disconnect", metrics.StatusLabel(err)).Inc()
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.accepted = without(w.accepted, connectionID)
	w.mu.Unlock()

	if peer > 0 {
		if err := w.sent.Remove(peer); err != nil {
			logger.Warn("Failed to forget disconnected peer", zap.Int("peer_id", peer), zap.Error(err))
		}
	}

	logger.Info("Connection removed", zap.Int("connection_id", connectionID), zap.Int("peer_id", peer))
	return nil
}

// peerOf looks connectionID up in the accepted list fetched for ownerID
func (w *Workflow) peerOf(ownerID, connectionID int) (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ownerID != ownerID {
		return 0, false
	}
	for _, conn := range w.accepted {
		if conn.ConnectionID == connectionID {
			return conn.PeerID(ownerID), true
		}
	}
	return 0, false
}

// Pending returns the last fetched pending list minus decided requests
func (w *Workflow) Pending() []models.ConnectionRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return clone(w.pending)
}

// Accepted returns the last fetched connections minus disconnected ones
func (w *Workflow) Accepted() []models.ConnectionRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return clone(w.accepted)
}

// Sent returns the receivers currently remembered in the sent set
func (w *Workflow) Sent() []int {
	return w.sent.List()
}

func (w *Workflow) remember(receiverID int) {
	if err := w.sent.Add(receiverID); err != nil {
		logger.Warn("Failed to remember sent request", zap.Int("receiver_id", receiverID), zap.Error(err))
	}
}

func (w *Workflow) begin(connectionID int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.deciding[connectionID]; busy {
		return false
	}
	w.deciding[connectionID] = struct{}{}
	return true
}

func (w *Workflow) end(connectionID int) {
	w.mu.Lock()
	delete(w.deciding, connectionID)
	w.mu.Unlock()
}

func without(list []models.ConnectionRequest, connectionID int) []models.ConnectionRequest {
	kept := make([]models.ConnectionRequest, 0, len(list))
	for _, item := range list {
		if item.ConnectionID != connectionID {
			kept = append(kept, item)
		}
	}
	return kept
}

func clone(list []models.ConnectionRequest) []models.ConnectionRequest {
	return append([]models.ConnectionRequest(nil), list...)
}
