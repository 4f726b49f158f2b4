package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentRequestsCache_PerUser(t *testing.T) {
	sc := NewSentRequestsCache(time.Hour)
	alice := sc.ForUser(1)
	bob := sc.ForUser(2)

	require.NoError(t, alice.Add(7))
	require.NoError(t, alice.Add(3))
	require.NoError(t, alice.Add(7))

	assert.Equal(t, []int{3, 7}, alice.List())
	assert.True(t, alice.Has(7))
	assert.False(t, bob.Has(7))
	assert.Empty(t, bob.List())
}

func TestSentRequestsCache_Remove(t *testing.T) {
	sc := NewSentRequestsCache(time.Hour)
	set := sc.ForUser(1)
	require.NoError(t, set.Add(2))
	require.NoError(t, set.Add(3))

	require.NoError(t, set.Remove(2))
	assert.Equal(t, []int{3}, set.List())

	require.NoError(t, set.Remove(3))
	assert.Empty(t, set.List())

	require.NoError(t, set.Remove(99))
	assert.Empty(t, set.List())
}

func TestSentRequestsCache_Expires(t *testing.T) {
	sc := NewSentRequestsCache(50 * time.Millisecond)
	set := sc.ForUser(1)
	require.NoError(t, set.Add(2))

	assert.Eventually(t, func() bool {
		return !set.Has(2)
	}, time.Second, 10*time.Millisecond)
}

func TestSentRequestsCache_ConcurrentAdds(t *testing.T) {
	sc := NewSentRequestsCache(time.Hour)
	set := sc.ForUser(1)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = set.Add(id)
		}(i)
	}
	wg.Wait()

	assert.Len(t, set.List(), 50)
}

func TestSentRequestsCache_Flush(t *testing.T) {
	sc := NewSentRequestsCache(time.Hour)
	require.NoError(t, sc.ForUser(1).Add(2))

	sc.Flush()

	assert.Empty(t, sc.ForUser(1).List())
}
