package services

import (
	"context"
	"time"

	"github.com/careerconnect/connect-client/internal/messaging"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/backend"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/sanitize"
)

var _ messaging.Transport = (*backend.Client)(nil)

// MessagingService serves the conversation views
type MessagingService struct {
	transport Scoped[messaging.Transport]
	interval  time.Duration
}

var _ MessagingServiceInterface = (*MessagingService)(nil)

// NewMessagingService creates a new MessagingService polling every interval
func NewMessagingService(transport Scoped[messaging.Transport], interval time.Duration) *MessagingService {
	return &MessagingService{transport: transport, interval: interval}
}

// Thread fetches the conversation with peerID once. Content is sanitized
// for rendering.
func (s *MessagingService) Thread(ctx context.Context, sess models.Session, peerID int) (*models.ThreadView, error) {
	if peerID <= 0 || peerID == sess.UserID {
		return nil, apperrors.InvalidInputError("peer", "must be another user")
	}

	messages, err := s.Open(sess, peerID).FetchThread(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ThreadView{PeerID: peerID, Messages: SanitizeMessages(messages)}, nil
}

// Send posts a message to peerID. The thread picks it up on its next fetch.
func (s *MessagingService) Send(ctx context.Context, sess models.Session, peerID int, content string) error {
	if peerID <= 0 || peerID == sess.UserID {
		return apperrors.InvalidInputError("peer", "must be another user")
	}
	return s.Open(sess, peerID).Send(ctx, content)
}

// Open returns an unstarted poller for the conversation with peerID. The
// caller owns its lifetime.
func (s *MessagingService) Open(sess models.Session, peerID int) *messaging.Poller {
	return messaging.NewPoller(s.transport(sess.Token), sess.UserID, peerID, s.interval)
}

// SanitizeMessages returns a copy of messages with rich text cleaned
func SanitizeMessages(messages []models.Message) []models.Message {
	out := make([]models.Message, len(messages))
	for i, msg := range messages {
		msg.Content = sanitize.RichText(msg.Content)
		out[i] = msg
	}
	return out
}
