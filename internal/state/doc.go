// Package state implements the global reactive key/value store.
//
// Keys are dotted strings ("wifi.status"), values are always strings;
// typed accessors convert at the edges. The store is the only object
// in the runtime shared across goroutines: a background sensor task
// may call Set while the UI goroutine is rendering.
//
// Watchers fire synchronously inside Set, in registration order,
// before Set returns. To keep that safe under reentrancy the store
// snapshots the matching watcher list while holding its lock, drops
// the lock, and then invokes the callbacks — so a watcher may call Set
// (or Watch/Unwatch) again without deadlocking, and the iteration is
// immune to the watcher list changing underneath it.
//
// Setting a key to its current value is a no-op and notifies nobody.
package state
