// Package state owns the terminal client's durable storage: one YAML file
// holding the session and the locally remembered sent connection requests.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	"gopkg.in/yaml.v3"
)

// SessionEntry is the persisted session together with its expiry
type SessionEntry struct {
	models.Session `yaml:",inline"`
	ExpiresAt      time.Time `yaml:"expires_at"`
}

// Document is the full content of the state file
type Document struct {
	Session      *SessionEntry `yaml:"session,omitempty"`
	SentRequests map[int][]int `yaml:"sent_requests,omitempty"`
}

// File is a YAML state file. Writes replace the file atomically.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a state file at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the location of the file
func (f *File) Path() string {
	return f.path
}

// Read returns the current document. A missing file is an empty document.
func (f *File) Read() (Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Update applies fn to the document and writes the result back
func (f *File) Update(fn func(doc *Document) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return f.write(doc)
}

func (f *File) read() (Document, error) {
	var doc Document

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse state file %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *File) write(doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to protect state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	return os.Rename(tmp.Name(), f.path)
}

// SentSet is the file-backed record of receivers a user already sent a
// connection request to. Like every sent set it is a UX hint, not truth.
type SentSet struct {
	file   *File
	userID int
}

// NewSentSet scopes the file's sent requests to one user
func NewSentSet(file *File, userID int) *SentSet {
	return &SentSet{file: file, userID: userID}
}

// Has reports whether receiverID is remembered
func (s *SentSet) Has(receiverID int) bool {
	for _, id := range s.List() {
		if id == receiverID {
			return true
		}
	}
	return false
}

// Add remembers receiverID
func (s *SentSet) Add(receiverID int) error {
	return s.file.Update(func(doc *Document) error {
		if doc.SentRequests == nil {
			doc.SentRequests = map[int][]int{}
		}
		for _, id := range doc.SentRequests[s.userID] {
			if id == receiverID {
				return nil
			}
		}
		doc.SentRequests[s.userID] = append(doc.SentRequests[s.userID], receiverID)
		return nil
	})
}

// Remove forgets receiverID
func (s *SentSet) Remove(receiverID int) error {
	return s.file.Update(func(doc *Document) error {
		ids := doc.SentRequests[s.userID]
		kept := ids[:0]
		for _, id := range ids {
			if id != receiverID {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			delete(doc.SentRequests, s.userID)
		} else {
			doc.SentRequests[s.userID] = kept
		}
		return nil
	})
}

// List returns the remembered receivers in ascending order
func (s *SentSet) List() []int {
	doc, err := s.file.Read()
	if err != nil {
		return nil
	}
	ids := append([]int(nil), doc.SentRequests[s.userID]...)
	sort.Ints(ids)
	return ids
}

// Replace overwrites the remembered receivers with ids
func (s *SentSet) Replace(ids []int) error {
	return s.file.Update(func(doc *Document) error {
		if doc.SentRequests == nil {
			doc.SentRequests = map[int][]int{}
		}
		if len(ids) == 0 {
			delete(doc.SentRequests, s.userID)
			return nil
		}
		doc.SentRequests[s.userID] = append([]int(nil), ids...)
		return nil
	})
}
