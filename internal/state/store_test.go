package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yamui/internal/document"
)

func TestStore_SetAndGet(t *testing.T) {
	s := New()
	s.Set("count", "4")

	assert.Equal(t, "4", s.Get("count", ""))
	assert.Equal(t, "", s.Get("missing", ""))

	v, ok := s.Lookup("count")
	assert.True(t, ok)
	assert.Equal(t, "4", v)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestStore_TypedAccessors(t *testing.T) {
	s := New()
	s.SetInt("count", 42)
	s.SetBool("enabled", true)

	assert.Equal(t, "42", s.Get("count", ""))
	assert.Equal(t, int64(42), s.GetInt("count", -1))
	assert.Equal(t, "true", s.Get("enabled", ""))
	assert.True(t, s.GetBool("enabled", false))

	assert.Equal(t, int64(7), s.GetInt("missing", 7))
	assert.True(t, s.GetBool("missing", true))

	s.Set("garbage", "not-a-number")
	assert.Equal(t, int64(9), s.GetInt("garbage", 9))
	assert.False(t, s.GetBool("garbage", false))
}

func TestStore_GetBoolSpellings(t *testing.T) {
	s := New()
	for _, v := range []string{"true", "TRUE", "1"} {
		s.Set("k", v)
		assert.True(t, s.GetBool("k", false), "value: %s", v)
	}
	for _, v := range []string{"false", "False", "0"} {
		s.Set("k", v)
		assert.False(t, s.GetBool("k", true), "value: %s", v)
	}
}

func TestStore_WatcherNotified(t *testing.T) {
	s := New()

	var gotKey, gotValue string
	s.Watch("count", func(key, value string) {
		gotKey, gotValue = key, value
	})

	s.Set("count", "1")
	assert.Equal(t, "count", gotKey)
	assert.Equal(t, "1", gotValue)
}

func TestStore_SetSameValueIsNoOp(t *testing.T) {
	s := New()
	calls := 0
	s.Watch("count", func(key, value string) { calls++ })

	s.Set("count", "1")
	s.Set("count", "1")
	s.Set("count", "1")

	assert.Equal(t, 1, calls, "idempotent sets must notify exactly once")
}

func TestStore_WildcardAndExactWatchersFireInRegistrationOrder(t *testing.T) {
	s := New()
	var order []string
	s.Watch("count", func(key, value string) { order = append(order, "exact") })
	s.Watch("", func(key, value string) { order = append(order, "wildcard") })
	s.Watch("other", func(key, value string) { order = append(order, "other") })

	s.Set("count", "1")
	assert.Equal(t, []string{"exact", "wildcard"}, order)
}

func TestStore_FanOut(t *testing.T) {
	s := New()
	const n = 5

	var order []int
	for i := 0; i < n; i++ {
		i := i
		s.Watch("k", func(key, value string) { order = append(order, i) })
	}
	s.Watch("", func(key, value string) { order = append(order, n) })

	s.Set("k", "v")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
}

func TestStore_Unwatch(t *testing.T) {
	s := New()
	calls := 0
	h := s.Watch("k", func(key, value string) { calls++ })

	s.Set("k", "1")
	s.Unwatch(h)
	s.Set("k", "2")

	assert.Equal(t, 1, calls)
}

func TestStore_ReentrantSetFromWatcher(t *testing.T) {
	// A watcher writing back into the store must not deadlock, and
	// the nested write notifies its own watchers.
	s := New()

	var derived []string
	s.Watch("celsius", func(key, value string) {
		s.Set("fahrenheit", fmt.Sprintf("%s00", value))
	})
	s.Watch("fahrenheit", func(key, value string) {
		derived = append(derived, value)
	})

	s.Set("celsius", "1")
	assert.Equal(t, []string{"100"}, derived)
	assert.Equal(t, "100", s.Get("fahrenheit", ""))
}

func TestStore_ConcurrentSets(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Set(fmt.Sprintf("key-%d", g), fmt.Sprintf("%d", i))
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 8, s.Len())
	for g := 0; g < 8; g++ {
		assert.Equal(t, "99", s.Get(fmt.Sprintf("key-%d", g), ""))
	}
}

func TestStore_SeedDoesNotNotify(t *testing.T) {
	s := New()
	calls := 0
	s.Watch("", func(key, value string) { calls++ })

	s.Seed(map[string]string{"a": "1", "b": "2"})

	assert.Equal(t, 0, calls)
	assert.Equal(t, "1", s.Get("a", ""))
	assert.Equal(t, "2", s.Get("b", ""))
}

func TestStore_SeedFromDocument(t *testing.T) {
	root, err := document.Parse("state:\n  count: 0\n  name: dev\n")
	require.NoError(t, err)

	s := New()
	s.Seed(map[string]string{"count": "preset"})
	require.NoError(t, s.SeedFromDocument(root.Child("state")))

	// Host seeds win over document seeds.
	assert.Equal(t, "preset", s.Get("count", ""))
	assert.Equal(t, "dev", s.Get("name", ""))
}

func TestStore_SeedFromDocumentRejectsNonMapping(t *testing.T) {
	root, err := document.Parse("state:\n  - a\n  - b\n")
	require.NoError(t, err)

	s := New()
	err = s.SeedFromDocument(root.Child("state"))
	require.Error(t, err)

	var ise *InvalidSeedError
	assert.ErrorAs(t, err, &ise)
}

func TestStore_ClearKeepsWatchers(t *testing.T) {
	s := New()
	calls := 0
	s.Watch("k", func(key, value string) { calls++ })

	s.Set("k", "1")
	s.Clear()
	assert.Equal(t, 0, s.Len())

	s.Set("k", "1")
	assert.Equal(t, 2, calls, "watcher survives Clear and value is new again")
}

func TestStore_Resolver(t *testing.T) {
	s := New()
	s.Set("count", "4")

	r := s.Resolver()
	v, ok := r.Resolve("count")
	assert.True(t, ok)
	assert.Equal(t, "4", v.AsString())

	_, ok = r.Resolve("missing")
	assert.False(t, ok)
}
