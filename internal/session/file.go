package session

import (
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/state"
)

// FilePersister stores the session in the terminal client's state file
type FilePersister struct {
	file *state.File
	now  func() time.Time
}

var _ Persister = (*FilePersister)(nil)

// NewFilePersister persists into file
func NewFilePersister(file *state.File) *FilePersister {
	return &FilePersister{file: file, now: time.Now}
}

// Load treats an expired entry as absent
func (p *FilePersister) Load() (models.Session, error) {
	doc, err := p.file.Read()
	if err != nil {
		return models.Session{}, err
	}
	if doc.Session == nil || !p.now().Before(doc.Session.ExpiresAt) {
		return models.Session{}, nil
	}
	return doc.Session.Session, nil
}

func (p *FilePersister) Save(sess models.Session, ttl time.Duration) error {
	return p.file.Update(func(doc *state.Document) error {
		doc.Session = &state.SessionEntry{
			Session:   sess,
			ExpiresAt: p.now().Add(ttl).UTC(),
		}
		return nil
	})
}

func (p *FilePersister) Clear() error {
	return p.file.Update(func(doc *state.Document) error {
		doc.Session = nil
		return nil
	})
}
