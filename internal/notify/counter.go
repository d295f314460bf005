// Package notify keeps the unread-notification count current by polling
// the API in the background.
package notify

import "sync/atomic"

// Counter holds the last known unread count. The zero value is ready to use.
type Counter struct {
	n atomic.Int64
}

func (c *Counter) Set(n int64) {
	if n < 0 {
		n = 0
	}
	c.n.Store(n)
}

// Decrement lowers the count by one, never below zero.
func (c *Counter) Decrement() int64 {
	for {
		cur := c.n.Load()
		if cur <= 0 {
			return 0
		}
		if c.n.CompareAndSwap(cur, cur-1) {
			return cur - 1
		}
	}
}

func (c *Counter) Reset() { c.n.Store(0) }

func (c *Counter) Value() int64 { return c.n.Load() }
