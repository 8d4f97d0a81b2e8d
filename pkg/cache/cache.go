// Package cache provides content-addressed caching for placement artifacts.
//
// The engine caches two kinds of data:
//
//   - Footprint estimates, keyed by a hash of a category's template set.
//     Estimating a footprint may require a disposable instance, so reusing
//     a previous measurement across runs avoids instantiate/destroy churn.
//   - Plan artifacts (JSON, SVG), keyed by region, configuration, and seed,
//     so re-rendering a placement the operator already computed is free.
//
// Two backends are provided: [FileCache] for CLI usage and [NullCache] to
// disable caching. Both report hits, misses, and writes through
// [observability.Cache] hooks.
package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs for the different artifact kinds.
const (
	// TTLEstimate is how long memoized footprint estimates live. Template
	// geometry changes rarely; a day keeps repeated runs cheap without
	// letting stale measurements linger forever.
	TTLEstimate = 24 * time.Hour

	// TTLPlan is how long rendered plan artifacts live.
	TTLPlan = 7 * 24 * time.Hour
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)
