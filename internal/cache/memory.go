package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Layered serves hits from a bounded in-memory LRU and falls back to a
// backing Store. Misses that hit the backing store are promoted into memory.
// Memory entries expire after the same TTL as the backing store.
// It is safe for concurrent use.
type Layered struct {
	front *expirable.LRU[string, string]
	back  Store
}

// NewLayered wraps back with an LRU holding up to size entries for ttl.
// A ttl of zero or less keeps entries until they are evicted.
func NewLayered(back Store, size int, ttl time.Duration) (*Layered, error) {
	if size <= 0 {
		size = 128
	}
	if ttl < 0 {
		ttl = 0
	}
	front := expirable.NewLRU[string, string](size, nil, ttl)
	return &Layered{front: front, back: back}, nil
}

// Get checks memory first, then the backing store.
func (l *Layered) Get(key string) (string, bool) {
	if v, ok := l.front.Get(key); ok {
		return v, true
	}
	if l.back == nil {
		return "", false
	}
	v, ok := l.back.Get(key)
	if ok {
		l.front.Add(key, v)
	}
	return v, ok
}

// Put writes to memory and the backing store.
func (l *Layered) Put(key, feedback string) error {
	l.front.Add(key, feedback)
	if l.back == nil {
		return nil
	}
	return l.back.Put(key, feedback)
}

// Len reports the number of in-memory entries.
func (l *Layered) Len() int {
	return l.front.Len()
}

// Purge drops every in-memory entry. The backing store is untouched.
func (l *Layered) Purge() {
	l.front.Purge()
}
