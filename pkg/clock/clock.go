// Package clock abstracts timer creation so polling loops can be driven
// deterministically in tests and cancelled promptly in production.
package clock

import "time"

// Clock produces wait channels. After behaves like time.After: it returns a
// channel that delivers once the duration elapses.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type system struct{}

// System returns a Clock backed by real timers.
func System() Clock {
	return system{}
}

func (system) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Immediate is a Clock whose waits elapse instantly. Each After call is
// counted, letting tests assert how many polling rounds slept.
type Immediate struct {
	Waits int
}

func (c *Immediate) After(d time.Duration) <-chan time.Time {
	c.Waits++
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}
