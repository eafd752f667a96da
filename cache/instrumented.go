package cache

import (
	"time"

	"github.com/briangreenhill/pokedex/internal/metrics"
)

// Instrumented wraps a Cache and counts hits and misses per key namespace
type Instrumented struct {
	cache Cache
}

var _ Cache = (*Instrumented)(nil)

// NewInstrumented creates a new instrumented view over c
func NewInstrumented(c Cache) *Instrumented {
	return &Instrumented{cache: c}
}

// Get implements Reader
func (i *Instrumented) Get(key string) (any, bool) {
	v, ok := i.cache.Get(key)
	status := "miss"
	if ok {
		status = "hit"
	}
	metrics.CacheLookups.WithLabelValues(Namespace(key), status).Inc()
	return v, ok
}

// Set implements Writer
func (i *Instrumented) Set(key string, value any, ttl time.Duration) {
	i.cache.Set(key, value, ttl)
}

// Delete implements Writer
func (i *Instrumented) Delete(key string) {
	i.cache.Delete(key)
}

// Clear implements Cache
func (i *Instrumented) Clear() {
	i.cache.Clear()
}

// Size implements Cache
func (i *Instrumented) Size() int {
	return i.cache.Size()
}
