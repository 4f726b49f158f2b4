// Package crud implements the list/create/delete flow shared by the
// skills, stories, resources and job postings views.
package crud

import (
	"context"
	"errors"
	"sync"

	"github.com/careerconnect/connect-client/pkg/backend"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	"github.com/careerconnect/connect-client/pkg/validation"
	"go.uber.org/zap"
)

// ErrNotSupported is returned when a view has no endpoint for an operation
var ErrNotSupported = errors.New("operation not supported for this collection")

// Entity is anything a collection can hold
type Entity interface {
	EntityID() int
}

// Endpoints binds a collection to its backend calls. Scope is the owner id
// a list is restricted to; zero means unscoped.
type Endpoints[T Entity, P any] struct {
	Name   string
	List   func(ctx context.Context, scope int) ([]T, error)
	Create func(ctx context.Context, payload P, attachment *backend.Attachment) (T, error)
	Delete func(ctx context.Context, id int) error
}

// Collection is the in-memory copy of one view's entities. It never
// caches across views; every view builds its own and fetches on open.
type Collection[T Entity, P any] struct {
	endpoints Endpoints[T, P]

	mu    sync.Mutex
	items []T
	scope int
}

// NewCollection creates an empty collection
func NewCollection[T Entity, P any](endpoints Endpoints[T, P]) *Collection[T, P] {
	return &Collection[T, P]{endpoints: endpoints}
}

// List fetches the entities, optionally scoped to an owner, and replaces the
// in-memory list in server order.
func (c *Collection[T, P]) List(ctx context.Context, scope int) ([]T, error) {
	if c.endpoints.List == nil {
		return nil, ErrNotSupported
	}

	items, err := c.endpoints.List(ctx, scope)
	if err != nil {
		logger.Warn("Failed to list entities",
			zap.String("entity", c.endpoints.Name),
			zap.Int("scope", scope),
			zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.scope = scope
	c.mu.Unlock()

	return items, nil
}

// Create validates and submits a new entity. The attachment, if any, is
// sent as a multipart file. On success the created entity is appended; if
// the backend does not echo it back the list is fetched again. On failure
// the list is left as it was.
func (c *Collection[T, P]) Create(ctx context.Context, payload P, attachment *backend.Attachment) (T, error) {
	var zero T
	if c.endpoints.Create == nil {
		return zero, ErrNotSupported
	}

	if err := validation.Struct(payload); err != nil {
		c.record("create", err)
		return zero, err
	}

	created, err := c.endpoints.Create(ctx, payload, attachment)
	c.record("create", err)
	if err != nil {
		return zero, err
	}

	if created.EntityID() == 0 {
		c.mu.Lock()
		scope := c.scope
		c.mu.Unlock()
		if _, err := c.List(ctx, scope); err != nil {
			logger.Warn("Created entity but failed to refresh list",
				zap.String("entity", c.endpoints.Name),
				zap.Error(err))
		}
		return created, nil
	}

	c.mu.Lock()
	c.items = append(c.items, created)
	c.mu.Unlock()
	return created, nil
}

// Delete removes an entity by id and filters it out of the list. There is
// no undo.
func (c *Collection[T, P]) Delete(ctx context.Context, id int) error {
	if c.endpoints.Delete == nil {
		return ErrNotSupported
	}
	if id <= 0 {
		return apperrors.InvalidInputError("id", "is required")
	}

	err := c.endpoints.Delete(ctx, id)
	c.record("delete", err)
	if err != nil {
		return err
	}

	c.mu.Lock()
	kept := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.mu.Unlock()
	return nil
}

// Items returns a snapshot of the in-memory list
func (c *Collection[T, P]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[T, P]) record(operation string, err error) {
	metrics.EntityMutations.WithLabelValues(c.endpoints.Name, operation, metrics.StatusLabel(err)).Inc()
}
