package crud

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefresher_FetchesOnlyWhenStale(t *testing.T) {
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	var fetches int
	r := NewRefresher("jobs", func(context.Context) (int, error) {
		fetches++
		return fetches, nil
	}, time.Minute, 5*time.Minute)
	r.now = func() time.Time { return clock }

	var got []int
	onUpdate := func(v int) { got = append(got, v) }
	onError := func(err error) { t.Fatalf("unexpected error: %v", err) }

	r.refresh(context.Background(), onUpdate, onError, true)
	assert.False(t, r.Stale())

	clock = clock.Add(4 * time.Minute)
	r.refresh(context.Background(), onUpdate, onError, false)
	assert.Equal(t, 1, fetches)

	clock = clock.Add(time.Minute)
	assert.True(t, r.Stale())
	r.refresh(context.Background(), onUpdate, onError, false)

	assert.Equal(t, 2, fetches)
	assert.Equal(t, []int{1, 2}, got)
}

func TestRefresher_FailureKeepsListingStale(t *testing.T) {
	r := NewRefresher("jobs", func(context.Context) (int, error) {
		return 0, errors.New("backend down")
	}, time.Minute, 5*time.Minute)

	var failures int
	r.refresh(context.Background(), func(int) { t.Fatal("no update expected") }, func(error) { failures++ }, true)

	assert.Equal(t, 1, failures)
	assert.True(t, r.Stale())
}

func TestRefresher_RunStopsWithContext(t *testing.T) {
	var fetches atomic.Int32
	r := NewRefresher("jobs", func(context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, 5*time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		r.Run(ctx, func(int) {}, func(error) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.GreaterOrEqual(t, fetches.Load(), int32(2))
}
