package crud

import (
	"context"
	"sync"
	"time"

	"github.com/careerconnect/connect-client/pkg/logger"
	"go.uber.org/zap"
)

// Refresher keeps a listing fresh: every check interval it re-fetches once
// the last successful fetch is older than maxAge.
type Refresher[T any] struct {
	name   string
	fetch  func(ctx context.Context) (T, error)
	check  time.Duration
	maxAge time.Duration
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewRefresher creates a refresher for the listing called name
func NewRefresher[T any](name string, fetch func(ctx context.Context) (T, error), check, maxAge time.Duration) *Refresher[T] {
	if check <= 0 {
		check = time.Minute
	}
	if maxAge < check {
		maxAge = check
	}
	return &Refresher[T]{
		name:   name,
		fetch:  fetch,
		check:  check,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Run fetches immediately and then whenever the listing went stale, until
// ctx is done. Every result goes to onUpdate, every failure to onError.
func (r *Refresher[T]) Run(ctx context.Context, onUpdate func(T), onError func(error)) {
	ticker := time.NewTicker(r.check)
	defer ticker.Stop()

	r.refresh(ctx, onUpdate, onError, true)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx, onUpdate, onError, false)
		}
	}
}

// Stale reports whether the last successful fetch is older than maxAge
func (r *Refresher[T]) Stale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last.IsZero() || r.now().Sub(r.last) >= r.maxAge
}

func (r *Refresher[T]) refresh(ctx context.Context, onUpdate func(T), onError func(error), force bool) {
	if ctx.Err() != nil || (!force && !r.Stale()) {
		return
	}

	result, err := r.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("Failed to refresh listing", zap.String("listing", r.name), zap.Error(err))
			onError(err)
		}
		return
	}

	r.mu.Lock()
	r.last = r.now()
	r.mu.Unlock()
	onUpdate(result)
}
