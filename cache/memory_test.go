package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for expiry tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()

	_, ok := m.Get("missing")
	assert.False(t, ok, "empty cache should miss")

	m.Set("k", "v1", time.Hour)
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	// Setting the same key twice keeps a single entry with the latest value.
	m.Set("k", "v2", time.Hour)
	v, ok = m.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, m.Size())
}

func TestMemoryExpiry(t *testing.T) {
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))

	m.Set("k", 42, time.Minute)

	clock.Advance(59 * time.Second)
	v, ok := m.Get("k")
	require.True(t, ok, "entry should be fresh before its ttl elapses")
	assert.Equal(t, 42, v)

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, m.Size(), "stale entries count until read")

	_, ok = m.Get("k")
	assert.False(t, ok, "expired entry should miss")
	assert.Equal(t, 0, m.Size(), "the read should evict the stale entry")
}

func TestMemoryNoExpiry(t *testing.T) {
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))

	m.Set("zero", "a", 0)
	m.Set("negative", "b", -time.Second)

	clock.Advance(100 * 365 * 24 * time.Hour)

	for _, key := range []string{"zero", "negative"} {
		_, ok := m.Get(key)
		assert.True(t, ok, "%s ttl should never expire", key)
	}
}

func TestMemoryDeleteAndClear(t *testing.T) {
	m := NewMemory()
	m.Set("a", 1, 0)
	m.Set("b", 2, 0)
	m.Set("c", 3, 0)

	m.Delete("a")
	m.Delete("does-not-exist")
	assert.Equal(t, 2, m.Size())

	m.Clear()
	assert.Equal(t, 0, m.Size())
	_, ok := m.Get("b")
	assert.False(t, ok)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%20)
				m.Set(key, w, time.Millisecond)
				m.Get(key)
				if i%50 == 0 {
					clock.Advance(time.Millisecond)
				}
				_ = m.Size()
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, m.Size(), 20)
}

func TestTypedGet(t *testing.T) {
	m := NewMemory()
	m.Set("n", 7, 0)

	n, ok := Get[int](m, "n")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = Get[string](m, "n")
	assert.False(t, ok, "type mismatch should be a miss")

	_, ok = Get[int](m, "absent")
	assert.False(t, ok)
}

func TestInstrumentedDelegates(t *testing.T) {
	inner := NewMemory()
	c := NewInstrumented(inner)

	c.Set(EntityKey(1), "bulbasaur", time.Hour)
	v, ok := c.Get(EntityKey(1))
	require.True(t, ok)
	assert.Equal(t, "bulbasaur", v)
	assert.Equal(t, 1, inner.Size())

	_, ok = c.Get(EntityKey(2))
	assert.False(t, ok)

	c.Delete(EntityKey(1))
	assert.Equal(t, 0, c.Size())

	c.Set(AbilityKey("overgrow"), "x", 0)
	c.Clear()
	assert.Equal(t, 0, inner.Size())
}
