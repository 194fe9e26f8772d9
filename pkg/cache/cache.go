package cache

import (
	"sync"
	"time"
)

// Kind names one class of cached upstream data. It is half of every
// cache key; the other half is the system-specific user id, never the
// free-text question, so different phrasings about the same person
// share entries.
type Kind string

const (
	KindIssues  Kind = "issues"
	KindCommits Kind = "commits"
	KindReviews Kind = "reviews"
)

// DefaultTTL bounds how stale a served payload may be
const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Store is a threadsafe TTL cache. Expiry is evaluated lazily on Get;
// there is no background sweep and no size bound, since the key space
// is capped by roster size times the number of kinds.
type Store[V any] struct {
	mu    sync.Mutex
	items map[string]entry[V]
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a cache with the given TTL. The clock is injected so
// tests can control expiry; pass time.Now in production.
func NewStore[V any](ttl time.Duration, now func() time.Time) *Store[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Store[V]{
		items: make(map[string]entry[V]),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns the payload stored under (kind, id) if it is younger than
// the TTL. An expired entry is deleted and reported as a miss.
func (s *Store[V]) Get(kind Kind, id string) (V, bool) {
	var zero V
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(kind, id)
	ent, ok := s.items[k]
	if !ok {
		return zero, false
	}
	if s.now().Sub(ent.storedAt) > s.ttl {
		delete(s.items, k)
		return zero, false
	}
	return ent.value, true
}

// Put stores a payload under (kind, id), overwriting any previous
// entry. Callers populate the cache after a successful fetch; there is
// no write-through.
func (s *Store[V]) Put(kind Kind, id string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key(kind, id)] = entry[V]{
		value:    value,
		storedAt: s.now(),
	}
}

// Len reports the number of entries, counting expired ones not yet
// collected by a Get.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func key(kind Kind, id string) string {
	return string(kind) + ":" + id
}
