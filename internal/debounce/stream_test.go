package debounce

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced Clock
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	created int
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	c       chan time.Time
	stopped bool
	fired   bool
}

func (t *fakeTimer) C() <-chan time.Time { return t.c }

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: t0}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), c: make(chan time.Time, 1)}
	c.timers = append(c.timers, t)
	c.created++
	return t
}

func (c *fakeClock) Created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.created
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			t.c <- t.at
		}
	}
}

func send[T any](t *testing.T, clock *fakeClock, in chan<- T, v T) {
	t.Helper()
	before := clock.Created()
	in <- v
	require.Eventually(t, func() bool { return clock.Created() > before }, time.Second, time.Millisecond)
}

func TestStream_EmitsSettledValues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := newFakeClock()
	in := make(chan string)
	out := Stream(ctx, clock, in, 500*time.Millisecond)

	send(t, clock, in, "b")
	clock.Advance(200 * time.Millisecond)
	send(t, clock, in, "ba")
	clock.Advance(200 * time.Millisecond)
	send(t, clock, in, "bat")

	clock.Advance(499 * time.Millisecond)
	select {
	case v := <-out:
		t.Fatalf("unexpected early value %q", v)
	case <-time.After(20 * time.Millisecond):
	}

	clock.Advance(time.Millisecond)
	select {
	case v := <-out:
		assert.Equal(t, "bat", v)
	case <-time.After(time.Second):
		t.Fatal("settled value not emitted")
	}
}

func TestStream_FlushesOnClose(t *testing.T) {
	clock := newFakeClock()
	in := make(chan int)
	out := Stream(context.Background(), clock, in, time.Hour)

	send(t, clock, in, 7)
	close(in)

	var got []int
	for v := range out {
		got = append(got, v)
	}
	assert.Equal(t, []int{7}, got)
}

func TestStream_CancelClosesOutput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clock := newFakeClock()
	in := make(chan int)
	out := Stream(ctx, clock, in, time.Hour)

	send(t, clock, in, 1)
	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("output not closed after cancel")
	}
}
