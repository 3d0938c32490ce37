// Package clocktest provides a manually driven ports.Clock for timer tests.
package clocktest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/ports"
)

var _ ports.Clock = (*FakeClock)(nil)

// FakeClock only moves when Advance or Sleep is called. Sleep advances the fake time by
// the requested duration and returns immediately.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
	sleeps []time.Duration
}

type fakeTimer struct {
	clock *FakeClock
	at    time.Time
	seq   int
	f     func()
	done  bool
}

func New(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	timer := &fakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()

	c.Advance(d)
	return ctx.Err()
}

// Advance moves the clock forward, firing due timers in deadline order. Timers scheduled
// by callbacks fire within the same call when they fall inside the window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.done = true
		c.now = next.at
		c.pruneLocked()
		c.mu.Unlock()

		next.f()
	}
}

// Pending reports how many timers are armed and not yet fired or stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, timer := range c.timers {
		if !timer.done {
			count++
		}
	}
	return count
}

// Sleeps returns every duration passed to Sleep, in call order.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

func (c *FakeClock) nextDueLocked(target time.Time) *fakeTimer {
	due := make([]*fakeTimer, 0, len(c.timers))
	for _, timer := range c.timers {
		if !timer.done && !timer.at.After(target) {
			due = append(due, timer)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (c *FakeClock) pruneLocked() {
	live := c.timers[:0]
	for _, timer := range c.timers {
		if !timer.done {
			live = append(live, timer)
		}
	}
	c.timers = live
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.clock.pruneLocked()
	return true
}
