package engine

import (
	"sync"
	"time"
)

// SessionCache stores short-lived per-engine session data (consent cookies,
// tokens) with a TTL. Each key has its own mutex so concurrent fetches for
// the same key are serialized while different keys don't block each other.
type SessionCache struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	value   string
	expires time.Time
}

func NewSessionCache() *SessionCache {
	return &SessionCache{entries: make(map[string]*sessionEntry)}
}

func (c *SessionCache) entry(key string) *sessionEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &sessionEntry{}
		c.entries[key] = e
	}
	return e
}

// GetOrFill returns the cached value for key, calling fill to produce a new
// one when the entry is missing or expired. Only one caller fills a given key
// at a time.
func (c *SessionCache) GetOrFill(key string, ttl time.Duration, fill func() (string, error)) (string, error) {
	e := c.entry(key)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.value != "" && time.Now().Before(e.expires) {
		return e.value, nil
	}

	value, err := fill()
	if err != nil {
		return "", err
	}
	e.value = value
	e.expires = time.Now().Add(ttl)
	return value, nil
}

// Invalidate drops the cached value for key.
func (c *SessionCache) Invalidate(key string) {
	e := c.entry(key)
	e.mu.Lock()
	e.value = ""
	e.mu.Unlock()
}
