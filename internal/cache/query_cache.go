// Package cache implements the request cache sitting between the catalog
// service and the repositories: key-based caching with per-class freshness
// windows, eviction of unused entries, deduplication of in-flight requests
// and a retry policy differentiated by error class.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/techhaven/storefront/pkg/retry"
	"github.com/techhaven/storefront/pkg/storeapi"
)

// Class selects the freshness window applied to a cached query.
type Class int

const (
	// ClassList covers product list queries.
	ClassList Class = iota
	// ClassDetail covers single-entity queries.
	ClassDetail
	// ClassOptions covers category/brand/feature enumeration queries.
	ClassOptions
	// ClassSearch covers free-text search results.
	ClassSearch
)

// Options are the cache and retry policy parameters.
type Options struct {
	ListStaleTime    time.Duration
	DetailStaleTime  time.Duration
	OptionsStaleTime time.Duration
	SearchStaleTime  time.Duration

	// GCTime is how long an unreferenced entry survives before eviction.
	GCTime time.Duration
	// SweepInterval is how often the eviction sweeper runs.
	SweepInterval time.Duration

	// MaxAttempts bounds total read attempts (4 = the initial call plus
	// three retries); MutationAttempts bounds write attempts (2 = one
	// retry).
	MaxAttempts      int
	MutationAttempts int
	BaseDelay        time.Duration
	MaxDelay         time.Duration
}

// DefaultOptions returns the documented policy defaults.
func DefaultOptions() Options {
	return Options{
		ListStaleTime:    5 * time.Minute,
		DetailStaleTime:  10 * time.Minute,
		OptionsStaleTime: 30 * time.Minute,
		SearchStaleTime:  2 * time.Minute,
		GCTime:           10 * time.Minute,
		SweepInterval:    time.Minute,
		MaxAttempts:      4,
		MutationAttempts: 2,
		BaseDelay:        time.Second,
		MaxDelay:         30 * time.Second,
	}
}

func (o *Options) normalize() {
	def := DefaultOptions()
	if o.ListStaleTime <= 0 {
		o.ListStaleTime = def.ListStaleTime
	}
	if o.DetailStaleTime <= 0 {
		o.DetailStaleTime = def.DetailStaleTime
	}
	if o.OptionsStaleTime <= 0 {
		o.OptionsStaleTime = def.OptionsStaleTime
	}
	if o.SearchStaleTime <= 0 {
		o.SearchStaleTime = def.SearchStaleTime
	}
	if o.GCTime <= 0 {
		o.GCTime = def.GCTime
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = def.SweepInterval
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.MutationAttempts <= 0 {
		o.MutationAttempts = def.MutationAttempts
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = def.BaseDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = def.MaxDelay
	}
}

type entry struct {
	value      any
	fetchedAt  time.Time
	lastAccess time.Time
	// invalidated marks the entry stale ahead of its freshness window,
	// forcing a refetch on next access (reconnect, write invalidation).
	invalidated bool
}

// QueryCache is an explicit, per-session cache object. Construct one with
// New and tear it down with Close; there is no package-level singleton.
type QueryCache struct {
	opts Options

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a QueryCache and starts its background eviction sweeper.
func New(opts Options) *QueryCache {
	opts.normalize()
	c := &QueryCache{
		opts:    opts,
		entries: make(map[string]*entry),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Close stops the eviction sweeper and drops all entries.
func (c *QueryCache) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		c.entries = make(map[string]*entry)
		c.mu.Unlock()
	})
}

// retryConfig is the retry policy: client errors (400-499) are never
// retried, everything else up to the attempt budget with capped exponential
// backoff (1s, 2s, 4s under the defaults).
func (c *QueryCache) retryConfig(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts: attempts,
		Backoff:     retry.ExponentialBackoff(c.opts.BaseDelay, c.opts.MaxDelay),
		ShouldRetry: storeapi.IsRetryable,
	}
}

func (c *QueryCache) staleTime(class Class) time.Duration {
	switch class {
	case ClassDetail:
		return c.opts.DetailStaleTime
	case ClassOptions:
		return c.opts.OptionsStaleTime
	case ClassSearch:
		return c.opts.SearchStaleTime
	default:
		return c.opts.ListStaleTime
	}
}

// lookup returns the cached value for key when it is still fresh.
func (c *QueryCache) lookup(key string, class Class) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e.lastAccess = time.Now()
	if e.invalidated || time.Since(e.fetchedAt) > c.staleTime(class) {
		return nil, false
	}
	return e.value, true
}

func (c *QueryCache) store(key string, value any) {
	now := time.Now()
	c.mu.Lock()
	c.entries[key] = &entry{value: value, fetchedAt: now, lastAccess: now}
	c.mu.Unlock()
}

// Invalidate marks every entry whose key starts with prefix as stale.
func (c *QueryCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.invalidated = true
		}
	}
}

// InvalidateAll marks every entry as stale.
func (c *QueryCache) InvalidateAll() {
	c.Invalidate("")
}

// Remove drops the entry for key entirely.
func (c *QueryCache) Remove(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// OnReconnect should be called when network connectivity returns. It marks
// all entries stale so the next access refetches. Regaining window focus
// deliberately has no equivalent trigger.
func (c *QueryCache) OnReconnect() {
	log.Debug().Msg("network reconnected, marking cache entries stale")
	c.InvalidateAll()
}

// Len returns the number of resident entries.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweep evicts entries that have not been accessed within GCTime.
func (c *QueryCache) sweep() {
	ticker := time.NewTicker(c.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.done:
			return
		}
	}
}

func (c *QueryCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if time.Since(e.lastAccess) > c.opts.GCTime {
			delete(c.entries, key)
		}
	}
}

// Fetch returns the cached value for key when fresh; otherwise it runs fn
// through the retry policy and caches the result. Concurrent callers with
// the same key share a single underlying call and receive the same result
// or error.
func Fetch[T any](ctx context.Context, c *QueryCache, class Class, key string, fn func(context.Context) (T, error)) (T, error) {
	if cached, ok := c.lookup(key, class); ok {
		return cached.(T), nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check after acquiring flight leadership: another caller may
		// have refreshed the entry while this one waited.
		if cached, ok := c.lookup(key, class); ok {
			return cached, nil
		}
		value, err := retry.DoWithResult(ctx, c.retryConfig(c.opts.MaxAttempts), func() (T, error) {
			return fn(ctx)
		})
		if err != nil {
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Mutate runs a write operation with the mutation retry policy (at most one
// retry) and marks the given key prefixes stale on success.
func (c *QueryCache) Mutate(ctx context.Context, fn func(context.Context) error, invalidate ...string) error {
	err := retry.Do(ctx, c.retryConfig(c.opts.MutationAttempts), func() error {
		return fn(ctx)
	})
	if err != nil {
		return err
	}
	for _, prefix := range invalidate {
		c.Invalidate(prefix)
	}
	return nil
}

// MutateWithResult is Mutate for write operations that return a value.
func MutateWithResult[T any](ctx context.Context, c *QueryCache, fn func(context.Context) (T, error), invalidate ...string) (T, error) {
	result, err := retry.DoWithResult(ctx, c.retryConfig(c.opts.MutationAttempts), func() (T, error) {
		return fn(ctx)
	})
	if err != nil {
		return result, err
	}
	for _, prefix := range invalidate {
		c.Invalidate(prefix)
	}
	return result, nil
}
