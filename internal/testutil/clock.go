package testutil

import (
	"sync"
	"time"
)

// DeterministicClock is a thread-safe logical clock for tests. Each
// call to Now advances by a fixed step from a fixed epoch, so journal
// timestamps are reproducible across runs.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	epoch time.Time
	step  time.Duration
	ticks int64
}

// NewDeterministicClock creates a clock starting at epoch, advancing
// by step per Now call.
func NewDeterministicClock(epoch time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{epoch: epoch, step: step}
}

// Now returns the next tick's time.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.epoch.Add(time.Duration(c.ticks) * c.step)
	c.ticks++
	return t
}

// Reset rewinds the clock to its epoch for test reuse.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = 0
}
