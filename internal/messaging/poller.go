// Package messaging keeps a conversation view fresh by re-fetching the whole
// thread on a fixed interval.
package messaging

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	"github.com/careerconnect/connect-client/pkg/profiling"
	"github.com/careerconnect/connect-client/pkg/sanitize"
	"go.uber.org/zap"
)

// DefaultInterval is the refresh period of a conversation view
const DefaultInterval = 5 * time.Second

var (
	ErrAlreadyStarted = errors.New("poller already started")
	ErrStopped        = errors.New("poller stopped")
)

// Transport delivers messages. The backend client polls over REST; a push
// transport can replace it without touching callers.
type Transport interface {
	FetchThread(ctx context.Context, userID, peerID int) ([]models.Message, error)
	SendMessage(ctx context.Context, senderID, receiverID int, content string) error
}

// Poller mirrors one conversation. Each fetch replaces the list wholesale;
// sending never touches the list, so a new message shows up on the next
// tick.
type Poller struct {
	transport Transport
	userID    int
	peerID    int
	interval  time.Duration

	mu       sync.Mutex
	messages []models.Message
	lastErr  error
	started  bool
	stopped  bool
	cancel   context.CancelFunc
	updates  chan []models.Message
	failures chan error
}

// NewPoller creates a poller for the conversation between userID and peerID
func NewPoller(transport Transport, userID, peerID int, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		transport: transport,
		userID:    userID,
		peerID:    peerID,
		interval:  interval,
		updates:   make(chan []models.Message, 1),
		failures:  make(chan error, 1),
	}
}

// PeerID returns the other side of the conversation
func (p *Poller) PeerID() int {
	return p.peerID
}

// FetchThread fetches the conversation and replaces the local list. A
// result that arrives after Stop is dropped without error.
func (p *Poller) FetchThread(ctx context.Context) ([]models.Message, error) {
	messages, err := p.transport.FetchThread(ctx, p.userID, p.peerID)
	metrics.MessagePollTicks.WithLabelValues(metrics.StatusLabel(err)).Inc()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return messages, nil
	}
	if err != nil {
		p.lastErr = err
		if ctx.Err() == nil {
			p.notifyFailure(err)
		}
		return nil, err
	}

	p.messages = append([]models.Message(nil), messages...)
	p.lastErr = nil
	p.notify()
	return messages, nil
}

// Start fetches immediately and then once per interval until ctx is done or
// Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrStopped
	}
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	p.started = true
	p.cancel = cancel
	p.mu.Unlock()

	metrics.ActivePollers.Inc()
	go profiling.Do(ctx, "message_poller", p.loop)
	return nil
}

func (p *Poller) loop(ctx context.Context) {
	defer metrics.ActivePollers.Dec()
	defer p.Stop()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if _, err := p.FetchThread(ctx); err != nil && ctx.Err() == nil {
		logger.Warn("Failed to refresh conversation",
			zap.Int("user_id", p.userID),
			zap.Int("peer_id", p.peerID),
			zap.Error(err))
	}
}

// Stop cancels polling. It does not wait for an in-flight fetch; its result
// is discarded. Stop is idempotent.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	if p.cancel != nil {
		p.cancel()
	}
	close(p.updates)
	close(p.failures)
}

// Send posts one message. The local list is not changed.
func (p *Poller) Send(ctx context.Context, content string) error {
	if sanitize.IsBlank(content) {
		return apperrors.InvalidInputError("content", "is required")
	}

	err := p.transport.SendMessage(ctx, p.userID, p.peerID, content)
	metrics.MessagesSent.WithLabelValues(metrics.StatusLabel(err)).Inc()
	if err != nil {
		return err
	}

	logger.Debug("Message sent", zap.Int("user_id", p.userID), zap.Int("peer_id", p.peerID))
	return nil
}

// Messages returns the last fetched conversation
func (p *Poller) Messages() []models.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Message(nil), p.messages...)
}

// Err returns the error of the last fetch, or nil if it succeeded
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Updates delivers a snapshot after every successful fetch. Only the most
// recent snapshot is kept for slow readers. The channel is closed by Stop.
func (p *Poller) Updates() <-chan []models.Message {
	return p.updates
}

// Failures delivers the error of every failed fetch, so a view can show
// that the conversation is stale. Only the most recent error is kept. The
// channel is closed by Stop.
func (p *Poller) Failures() <-chan error {
	return p.failures
}

// notifyFailure must be called with p.mu held and the poller not stopped
func (p *Poller) notifyFailure(err error) {
	select {
	case p.failures <- err:
	default:
		select {
		case <-p.failures:
		default:
		}
		p.failures <- err
	}
}

// notify must be called with p.mu held and the poller not stopped
func (p *Poller) notify() {
	snapshot := append([]models.Message(nil), p.messages...)
	select {
	case p.updates <- snapshot:
	default:
		select {
		case <-p.updates:
		default:
		}
		p.updates <- snapshot
	}
}
