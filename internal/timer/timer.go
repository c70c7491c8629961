// Package timer implements the CHIP-8 delay timer.
//
// The timer does not tick in the background. It stores the value and the
// time it was set, the remaining value is derived on every read from the
// elapsed real time. This keeps the timer purely query driven and avoids
// a background task.
package timer

import "time"

// TickDuration is the real-time duration of one countdown tick,
// the delay timer decays at 60Hz.
const TickDuration = 16 * time.Millisecond

// Timer represents the delay timer of the virtual machine.
type Timer struct {
	value byte
	setAt time.Time

	now func() time.Time
}

// New creates a new delay timer with an expired zero value.
func New() *Timer {
	t := &Timer{
		now: time.Now,
	}
	t.setAt = t.now()
	return t
}

// Set stores the countdown value and resets its real-time set-point.
func (t *Timer) Set(value byte) {
	t.value = value
	t.setAt = t.now()
}

// Get returns the remaining countdown value. The value is derived from
// the elapsed whole ticks since the last Set call and floored at zero,
// it never exceeds the set value and never underflows.
func (t *Timer) Get() byte {
	ticks := t.now().Sub(t.setAt).Milliseconds() / TickDuration.Milliseconds()
	if ticks >= int64(t.value) {
		return 0
	}
	return t.value - byte(ticks)
}
