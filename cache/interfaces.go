// Package cache provides the in-memory TTL cache that sits between the catalog
// aggregators and the upstream API, along with the key scheme every resolver uses.
package cache

import "time"

// Entry represents a cached value with its expiry
type Entry struct {
	Value any
	// ExpiresAt is zero when the entry never expires
	ExpiresAt time.Time
}

// expired reports whether the entry is past its expiry at now
func (e Entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Reader defines the interface for reading cache entries
type Reader interface {
	// Get returns the value stored under key and true, or false when the key
	// is absent or expired. Expired entries are evicted by the read.
	Get(key string) (any, bool)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Set stores value under key, replacing any existing entry.
	// A ttl <= 0 stores an entry that never expires.
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

// ReadWriter combines both cache operations
type ReadWriter interface {
	Reader
	Writer
}

// Cache is the main interface that combines all cache operations
type Cache interface {
	ReadWriter

	// Clear removes every entry.
	Clear()

	// Size returns the number of stored entries, including stale entries
	// that have not been read since they expired.
	Size() int
}

// Get is a typed read over r. A stored value of a different type is reported as a miss.
func Get[V any](r Reader, key string) (V, bool) {
	var zero V
	v, ok := r.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	if !ok {
		return zero, false
	}
	return typed, true
}
