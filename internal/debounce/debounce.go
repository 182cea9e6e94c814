// Package debounce delays action on rapidly changing input until it has
// been quiet for a fixed period.
//
// The core Debouncer is a pure state machine driven by explicit timestamps,
// so callers bring their own time source: Bubble Tea ticks in the TUI,
// a Clock in Stream, plain values in tests.
package debounce

import "time"

// Debouncer holds the latest input and the time it settles
type Debouncer[T any] struct {
	quiet    time.Duration
	pending  T
	deadline time.Time
	armed    bool
}

// New creates a debouncer that settles after quiet without input
func New[T any](quiet time.Duration) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet}
}

// Quiet returns the configured quiet period
func (d *Debouncer[T]) Quiet() time.Duration {
	return d.quiet
}

// Input records v received at the given time and restarts the quiet period.
// It returns the new settle deadline.
func (d *Debouncer[T]) Input(v T, at time.Time) time.Time {
	d.pending = v
	d.deadline = at.Add(d.quiet)
	d.armed = true
	return d.deadline
}

// Poll returns the pending value once its deadline has passed.
// A settled value is returned exactly once.
func (d *Debouncer[T]) Poll(at time.Time) (T, bool) {
	var zero T
	if !d.armed || at.Before(d.deadline) {
		return zero, false
	}
	v := d.pending
	d.pending = zero
	d.armed = false
	return v, true
}

// Flush returns the pending value immediately, ignoring the deadline
func (d *Debouncer[T]) Flush() (T, bool) {
	var zero T
	if !d.armed {
		return zero, false
	}
	v := d.pending
	d.pending = zero
	d.armed = false
	return v, true
}

// Deadline returns when the pending value settles
func (d *Debouncer[T]) Deadline() (time.Time, bool) {
	return d.deadline, d.armed
}

// Pending reports whether a value is waiting to settle
func (d *Debouncer[T]) Pending() bool {
	return d.armed
}

// Reset drops any pending value
func (d *Debouncer[T]) Reset() {
	var zero T
	d.pending = zero
	d.armed = false
}

// Event is a value observed at a point in time
type Event[T any] struct {
	At    time.Time
	Value T
}

// Settle maps a time-ordered input stream to the values that survive a quiet
// period, each stamped with the time it settles. The stream is assumed to
// end after its last event, so the last value always settles.
func Settle[T any](events []Event[T], quiet time.Duration) []Event[T] {
	var settled []Event[T]
	for i, ev := range events {
		if i+1 < len(events) && events[i+1].At.Sub(ev.At) < quiet {
			continue
		}
		settled = append(settled, Event[T]{At: ev.At.Add(quiet), Value: ev.Value})
	}
	return settled
}
