// Package clock provides the timestamps used in ledger log keys.
package clock

import (
	"sync"
	"time"
)

// Clock returns Unix nanosecond timestamps.
type Clock interface {
	Now() int64
}

// Monotonic never returns the same value twice, so log rows written within
// one invocation get distinct keys even when the wall clock doesn't move.
type Monotonic struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewMonotonic returns a clock reading the system time.
func NewMonotonic() *Monotonic {
	return &Monotonic{now: time.Now}
}

// NewMonotonicFrom returns a clock reading from now. Used by tests.
func NewMonotonicFrom(now func() time.Time) *Monotonic {
	return &Monotonic{now: now}
}

func (c *Monotonic) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UnixNano()
	if t <= c.last {
		t = c.last + 1
	}
	c.last = t
	return t
}
