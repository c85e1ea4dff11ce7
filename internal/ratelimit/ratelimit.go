// Package ratelimit provides a keyed rate limiter using token bucket algorithm.
// It supports both non-blocking (Allow) and blocking (Wait) operations.
package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	// idleTTL is how long a key may sit unused before its bucket is dropped.
	idleTTL = 3 * time.Minute
	// sweepInterval is how often stale buckets are evicted.
	sweepInterval = time.Minute
)

// entry pairs a limiter with its last access time (unix nanos).
type entry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key gets its own independent rate limiter. Keys are
// client IPs here, so idle buckets are swept out periodically to keep
// the map from growing with every address that ever hit the service.
type KeyedRateLimiter struct {
	mu      sync.RWMutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	// Cleanup
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a new keyed rate limiter.
// rps: requests per second allowed.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go krl.cleanup()

	return krl
}

// Allow checks if a request for the given key should be allowed.
// Returns immediately without blocking. Use for inbound request protection.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getEntry(key).limiter.Allow()
}

// Wait blocks until a request for the given key is allowed or context is canceled.
// A waiter holds its own reference, so eviction never strands a Wait.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return krl.getEntry(key).limiter.Wait(ctx)
}

// Len reports how many keys currently hold a bucket.
func (krl *KeyedRateLimiter) Len() int {
	krl.mu.RLock()
	defer krl.mu.RUnlock()
	return len(krl.entries)
}

// getEntry returns the entry for a key, creating one if needed.
func (krl *KeyedRateLimiter) getEntry(key string) *entry {
	now := time.Now().UnixNano()

	// Fast path: read lock
	krl.mu.RLock()
	e, exists := krl.entries[key]
	krl.mu.RUnlock()

	if exists {
		e.lastSeen.Store(now)
		return e
	}

	// Slow path: write lock to create
	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring write lock
	if e, exists = krl.entries[key]; exists {
		e.lastSeen.Store(now)
		return e
	}

	e = &entry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
	e.lastSeen.Store(now)
	krl.entries[key] = e
	return e
}

// Stop shuts down the cleanup goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

// cleanup periodically evicts buckets that have been idle past idleTTL.
func (krl *KeyedRateLimiter) cleanup() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			krl.evictStale(time.Now())
		}
	}
}

// evictStale drops every entry last seen before now minus idleTTL.
func (krl *KeyedRateLimiter) evictStale(now time.Time) {
	cutoff := now.Add(-idleTTL).UnixNano()

	krl.mu.Lock()
	defer krl.mu.Unlock()

	for key, e := range krl.entries {
		if e.lastSeen.Load() < cutoff {
			delete(krl.entries, key)
		}
	}
}
