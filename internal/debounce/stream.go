package debounce

import (
	"context"
	"time"
)

// Clock is the time source used by Stream
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Timer is the subset of *time.Timer that Stream needs
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// RealClock is a Clock backed by package time
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) NewTimer(d time.Duration) Timer {
	return realTimer{time.NewTimer(d)}
}

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }

// Stream forwards values from in to the returned channel once they have been
// quiet for the given period. When in is closed any pending value is
// flushed and the output closes; cancelling ctx closes it without flushing.
func Stream[T any](ctx context.Context, clock Clock, in <-chan T, quiet time.Duration) <-chan T {
	if clock == nil {
		clock = RealClock{}
	}
	out := make(chan T)

	go func() {
		defer close(out)

		d := New[T](quiet)
		var timer Timer
		var fire <-chan time.Time

		emit := func(v T) bool {
			select {
			case out <- v:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case v, ok := <-in:
				if !ok {
					if timer != nil {
						timer.Stop()
					}
					if val, ok := d.Flush(); ok {
						emit(val)
					}
					return
				}
				d.Input(v, clock.Now())
				if timer != nil {
					timer.Stop()
				}
				timer = clock.NewTimer(quiet)
				fire = timer.C()

			case now := <-fire:
				fire = nil
				if val, ok := d.Poll(now); ok {
					if !emit(val) {
						return
					}
				}
			}
		}
	}()

	return out
}
