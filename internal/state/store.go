package state

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/roach88/yamui/internal/document"
)

// WatchFunc is invoked with the changed key and its new value.
// Wildcard watchers receive every key.
type WatchFunc func(key, value string)

// Handle identifies a registered watcher. Handles are never reused
// while the store lives; the zero Handle is never issued.
type Handle uint64

type watcher struct {
	id  Handle
	key string // "" matches every key
	fn  WatchFunc
}

// Store is a reactive string key/value map. The zero value is not
// usable; construct with New. All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	entries  map[string]string
	watchers []watcher // registration order
	nextID   Handle
	log      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger directs the store's diagnostics to log. The default is
// slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]string),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set stores value under key and synchronously notifies every
// matching watcher, in registration order, before returning. Setting
// a key to its current value does nothing. An empty key is ignored.
func (s *Store) Set(key, value string) {
	s.set(key, value, true)
}

// SetInt stores a decimal rendering of value.
func (s *Store) SetInt(key string, value int64) {
	s.Set(key, strconv.FormatInt(value, 10))
}

// SetBool stores "true" or "false".
func (s *Store) SetBool(key string, value bool) {
	s.Set(key, strconv.FormatBool(value))
}

func (s *Store) set(key, value string, notify bool) {
	if key == "" {
		return
	}

	s.mu.Lock()
	if current, ok := s.entries[key]; ok && current == value {
		s.mu.Unlock()
		return
	}
	s.entries[key] = value

	// Snapshot matching watchers so callbacks run outside the lock:
	// a watcher calling Set again must not deadlock, and Unwatch from
	// inside a callback must not corrupt this iteration.
	var pending []WatchFunc
	if notify {
		for _, w := range s.watchers {
			if w.key == "" || w.key == key {
				pending = append(pending, w.fn)
			}
		}
	}
	s.mu.Unlock()

	if notify {
		s.log.Debug("state changed", "key", key, "value", value)
	}
	for _, fn := range pending {
		fn(key, value)
	}
}

// Get returns the value stored under key, or def when the key is
// absent. Reads never fail.
func (s *Store) Get(key, def string) string {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	return v
}

// Lookup returns the value stored under key and whether it exists.
func (s *Store) Lookup(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

// GetInt parses the stored value as a decimal integer. Absent, empty,
// or unparseable values yield def.
func (s *Store) GetInt(key string, def int64) int64 {
	v, ok := s.Lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// GetBool interprets "true"/"1" as true and "false"/"0" as false,
// case-insensitively. Anything else yields def.
func (s *Store) GetBool(key string, def bool) bool {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return def
}

// Watch registers fn for changes to key; an empty key watches every
// key. The returned handle is never reused.
func (s *Store) Watch(key string, fn WatchFunc) Handle {
	if fn == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.watchers = append(s.watchers, watcher{id: s.nextID, key: key, fn: fn})
	return s.nextID
}

// Unwatch removes the watcher registered under h. Unknown handles are
// ignored. Registration order of the remaining watchers is preserved.
func (s *Store) Unwatch(h Handle) {
	if h == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchers {
		if w.id == h {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			return
		}
	}
}

// Seed bulk-loads entries without notifying watchers. Existing keys
// are overwritten; empty keys are skipped.
func (s *Store) Seed(entries map[string]string) {
	for k, v := range entries {
		s.set(k, v, false)
	}
}

// SeedFromDocument loads default values from a document mapping of
// scalar entries, without notifying watchers. Keys already present in
// the store win, so persisted or host-injected values survive a
// document reload. A nil node is a no-op.
func (s *Store) SeedFromDocument(node *document.Node) error {
	if node == nil {
		return nil
	}
	if node.Kind() != document.KindMapping {
		return &InvalidSeedError{Kind: node.Kind()}
	}
	for child := node.ChildAt(0); child != nil; child = child.Next() {
		key := child.Key()
		if key == "" {
			continue
		}
		if _, exists := s.Lookup(key); exists {
			continue
		}
		s.set(key, child.Scalar(), false)
	}
	return nil
}

// Clear removes every entry, keeping watchers registered. Nobody is
// notified.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Keys returns the stored keys in unspecified order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}
