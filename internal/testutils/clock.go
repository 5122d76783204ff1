package testutils

import (
	"sync"
	"time"
)

// TestClock returns a deterministic, strictly increasing time sequence. Import
// timestamps in tests stay stable across runs.
type TestClock struct {
	time time.Time
	step time.Duration
	lock sync.Mutex
}

func NewTestClock(t time.Time, step time.Duration) *TestClock {
	return &TestClock{
		time: t,
		step: step,
	}
}
func (c *TestClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	res := c.time
	c.time = c.time.Add(c.step)
	return res
}
