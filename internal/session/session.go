// Package session holds the client's authenticated identity. A Manager is
// the single source of identity for one client instance; every other
// component reads the user id and token from it.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/logger"
	"go.uber.org/zap"
)

// DefaultTTL is how long a persisted session survives
const DefaultTTL = 24 * time.Hour

// Store is the session interface every view depends on
type Store interface {
	Get() models.Session
	Login(token string, role models.Role, profileImagePath string, userID int) error
	Logout() error
}

// Persister is the durable side of a session. The four session fields are
// always saved and cleared together as one entry.
type Persister interface {
	// Load returns the stored session, or the zero Session if there is
	// none or it has expired.
	Load() (models.Session, error)
	Save(sess models.Session, ttl time.Duration) error
	Clear() error
}

// Manager implements Store over a Persister
type Manager struct {
	mu        sync.RWMutex
	current   models.Session
	persister Persister
	ttl       time.Duration
}

var _ Store = (*Manager)(nil)

// NewManager seeds a session from the persister. An unreadable or
// tampered entry is cleared and the session starts absent.
func NewManager(persister Persister, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	m := &Manager{persister: persister, ttl: ttl}

	sess, err := persister.Load()
	if err != nil {
		logger.Warn("Discarding unreadable stored session", zap.Error(err))
		if clearErr := persister.Clear(); clearErr != nil {
			logger.LogError(clearErr, "Failed to clear stored session")
		}
		return m
	}
	if !isComplete(sess) {
		return m
	}

	m.current = sess
	return m
}

// Get returns a snapshot of the session
func (m *Manager) Get() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Login replaces the whole session. The token shape is not checked. The
// entry is persisted first so memory never holds a session storage lacks.
func (m *Manager) Login(token string, role models.Role, profileImagePath string, userID int) error {
	sess := models.Session{
		Token:            token,
		Role:             role,
		UserID:           userID,
		ProfileImagePath: profileImagePath,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persister.Save(sess, m.ttl); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.current = sess
	return nil
}

// Logout clears the session, storage first. If storage cannot be cleared
// the session stays in memory too. Calling it without a session is a no-op.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persister.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.current = models.Session{}
	return nil
}

// TTL returns the lifetime given to persisted sessions
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// A stored entry missing its token, role or user id is a partial session
// and is ignored.
func isComplete(sess models.Session) bool {
	return sess.Token != "" && sess.Role != "" && sess.UserID > 0
}
