package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	sentRequestsCacheName  = "sent_requests"
	defaultSentRequestsTTL = 24 * time.Hour
)

// SentRequestsCache remembers, per user, which receivers were already sent
// a connection request from this web client. Entries expire so a stale
// mark never outlives the TTL; the server stays the source of truth.
type SentRequestsCache struct {
	cache *gocache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

// NewSentRequestsCache creates a sent-requests cache
func NewSentRequestsCache(ttl time.Duration) *SentRequestsCache {
	if ttl <= 0 {
		ttl = defaultSentRequestsTTL
	}
	return &SentRequestsCache{
		cache: gocache.New(ttl, time.Hour),
		ttl:   ttl,
	}
}

func sentKey(userID int) string {
	return fmt.Sprintf("sent:%d", userID)
}

// ForUser returns the sent set of one user
func (sc *SentRequestsCache) ForUser(userID int) *UserSentRequests {
	return &UserSentRequests{cache: sc, userID: userID}
}

func (sc *SentRequestsCache) get(userID int) []int {
	data, found := sc.cache.Get(sentKey(userID))
	if !found {
		metrics.CacheMisses.WithLabelValues(sentRequestsCacheName).Inc()
		return nil
	}

	ids, ok := data.([]int)
	if !ok {
		logger.Error("Invalid sent requests cache data type", zap.Int("user_id", userID))
		sc.cache.Delete(sentKey(userID))
		return nil
	}

	metrics.CacheHits.WithLabelValues(sentRequestsCacheName).Inc()
	return ids
}

func (sc *SentRequestsCache) update(userID int, fn func(ids []int) []int) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	current := append([]int(nil), sc.get(userID)...)
	next := fn(current)
	if len(next) == 0 {
		sc.cache.Delete(sentKey(userID))
		return
	}
	sc.cache.Set(sentKey(userID), next, sc.ttl)
}

// Flush drops every remembered request
func (sc *SentRequestsCache) Flush() {
	sc.cache.Flush()
}

// UserSentRequests is the sent set of a single user
type UserSentRequests struct {
	cache  *SentRequestsCache
	userID int
}

// Has reports whether receiverID is remembered
func (u *UserSentRequests) Has(receiverID int) bool {
	for _, id := range u.cache.get(u.userID) {
		if id == receiverID {
			return true
		}
	}
	return false
}

// Add remembers receiverID and refreshes the entry's TTL
func (u *UserSentRequests) Add(receiverID int) error {
	u.cache.update(u.userID, func(ids []int) []int {
		for _, id := range ids {
			if id == receiverID {
				return ids
			}
		}
		return append(ids, receiverID)
	})
	return nil
}

// Remove forgets receiverID
func (u *UserSentRequests) Remove(receiverID int) error {
	u.cache.update(u.userID, func(ids []int) []int {
		kept := ids[:0]
		for _, id := range ids {
			if id != receiverID {
				kept = append(kept, id)
			}
		}
		return kept
	})
	return nil
}

// List returns the remembered receivers in ascending order
func (u *UserSentRequests) List() []int {
	ids := append([]int(nil), u.cache.get(u.userID)...)
	sort.Ints(ids)
	return ids
}
