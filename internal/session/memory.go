package session

import (
	"sync"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
)

// MemoryPersister keeps the session in process memory
type MemoryPersister struct {
	mu        sync.Mutex
	sess      models.Session
	expiresAt time.Time
	now       func() time.Time
}

var _ Persister = (*MemoryPersister)(nil)

// NewMemoryPersister creates an empty in-memory persister
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{now: time.Now}
}

func (p *MemoryPersister) Load() (models.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess.IsZero() || !p.now().Before(p.expiresAt) {
		return models.Session{}, nil
	}
	return p.sess, nil
}

func (p *MemoryPersister) Save(sess models.Session, ttl time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sess = sess
	p.expiresAt = p.now().Add(ttl)
	return nil
}

func (p *MemoryPersister) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sess = models.Session{}
	p.expiresAt = time.Time{}
	return nil
}
