package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func TestDebouncer_SettlesAfterQuietPeriod(t *testing.T) {
	d := New[string](500 * time.Millisecond)

	d.Input("b", at(0))
	d.Input("ba", at(100))
	d.Input("bat", at(200))

	_, ok := d.Poll(at(600))
	assert.False(t, ok, "only 400ms since last keystroke")

	v, ok := d.Poll(at(700))
	assert.True(t, ok)
	assert.Equal(t, "bat", v)

	_, ok = d.Poll(at(900))
	assert.False(t, ok, "settled value is delivered once")
}

func TestDebouncer_Deadline(t *testing.T) {
	d := New[int](time.Second)

	_, armed := d.Deadline()
	assert.False(t, armed)

	deadline := d.Input(1, at(0))
	got, armed := d.Deadline()
	assert.True(t, armed)
	assert.Equal(t, at(1000), deadline)
	assert.Equal(t, deadline, got)
}

func TestDebouncer_FlushAndReset(t *testing.T) {
	d := New[string](time.Second)

	d.Input("x", at(0))
	v, ok := d.Flush()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.False(t, d.Pending())

	d.Input("y", at(0))
	d.Reset()
	_, ok = d.Poll(at(5000))
	assert.False(t, ok)
}

func TestSettle(t *testing.T) {
	quiet := 500 * time.Millisecond
	events := []Event[string]{
		{At: at(0), Value: "s"},
		{At: at(120), Value: "su"},
		{At: at(240), Value: "sup"},
		{At: at(1000), Value: "supe"}, // pause of 760ms lets "sup" settle
		{At: at(1100), Value: "super"},
	}

	got := Settle(events, quiet)

	assert.Equal(t, []Event[string]{
		{At: at(740), Value: "sup"},
		{At: at(1600), Value: "super"},
	}, got)
}

func TestSettle_Empty(t *testing.T) {
	assert.Empty(t, Settle[string](nil, time.Second))
}

func TestSettle_GapEqualToQuietSettles(t *testing.T) {
	events := []Event[int]{
		{At: at(0), Value: 1},
		{At: at(500), Value: 2},
	}

	got := Settle(events, 500*time.Millisecond)

	assert.Len(t, got, 2)
}
