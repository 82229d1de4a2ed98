// Package cache provides a keyed TTL cache with single-flight deduplication.
// It exists so burst initialization (identity resolution, tenant settings)
// never issues the same network call twice concurrently.
package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache memoizes producer results per key for a caller-supplied TTL and
// collapses concurrent lookups for the same key into one producer call.
// Producer failures are cached as a nil value for the TTL window so a
// failing endpoint is not hammered on every lookup.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	// gens tracks an invalidation generation per key. A flight captures the
	// generation when it starts and only stores its result if no Invalidate
	// ran in between, so a superseded lookup cannot resurrect stale data.
	gens   map[string]uint64
	group  singleflight.Group
	logger zerolog.Logger
	now    func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		gens:    make(map[string]uint64),
		logger:  log.With().Str("component", "cache").Logger(),
		now:     time.Now,
	}
}

// Get returns the cached value for key when it is younger than ttl,
// otherwise runs producer. Concurrent callers for the same key while the
// producer is in flight all receive the same settled result.
func (c *Cache) Get(key string, ttl time.Duration, producer func() (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.storedAt) < ttl {
		c.mu.Unlock()
		return e.value, nil
	}
	gen, known := c.gens[key]
	if !known {
		c.gens[key] = gen
	}
	c.mu.Unlock()

	value, err, shared := c.group.Do(key, func() (any, error) {
		v, err := producer()
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Producer failed, caching empty result")
			v = nil
		}
		c.mu.Lock()
		// An Invalidate that ran while the producer was in flight bumps the
		// generation; this result is then stale and must not be stored.
		if c.gens[key] == gen {
			c.entries[key] = entry{value: v, storedAt: c.now()}
		}
		c.mu.Unlock()
		// The error is only surfaced to the callers of this flight
		return v, err
	})
	if shared {
		c.logger.Debug().Str("key", key).Msg("Joined in-flight lookup")
	}
	return value, err
}

// Invalidate clears the named keys, or every entry when called with none.
// Must be called on any identity change (sign-in or sign-out). In-flight
// lookups for the invalidated keys are forgotten as well: a caller arriving
// after the invalidation starts a fresh producer instead of joining a flight
// that belongs to the previous identity.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(keys) == 0 {
		c.entries = make(map[string]entry)
		for key := range c.gens {
			c.gens[key]++
			c.group.Forget(key)
		}
		return
	}
	for _, key := range keys {
		delete(c.entries, key)
		c.gens[key]++
		c.group.Forget(key)
	}
}

// Len reports the number of cached entries, fresh or stale
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
