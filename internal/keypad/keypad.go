// Package keypad implements the 16-key input latch of the CHIP-8
// virtual machine.
//
// The latch holds at most one currently pressed key code. A pressed key
// stays latched for a minimum hold duration before it may be released,
// this decouples the emulated key-release timing from the much faster
// instruction cadence and models a human-scale key release.
package keypad

import "time"

// ReleaseHold is the minimum real-time duration a latched key press
// remains before it may be released.
const ReleaseHold = 200 * time.Millisecond

// Keypad represents the single-slot key press latch.
type Keypad struct {
	code      byte
	latched   bool
	pressedAt time.Time

	now func() time.Time
}

// New creates a new keypad with no latched key.
func New() *Keypad {
	return &Keypad{
		now: time.Now,
	}
}

// Press latches the given key code 0x0-0xF and resets the hold timestamp.
// A press always overwrites the previously latched key. Translating host
// key events into valid codes is the responsibility of the frontend.
func (k *Keypad) Press(code byte) {
	k.code = code
	k.latched = true
	k.pressedAt = k.now()
}

// IsPressed returns true if the given key code is currently latched.
func (k *Keypad) IsPressed(code byte) bool {
	return k.latched && k.code == code
}

// Pressed returns the currently latched key code, if any.
func (k *Keypad) Pressed() (byte, bool) {
	return k.code, k.latched
}

// CanRelease returns true if a key is latched and the minimum hold
// duration has elapsed since it was pressed.
func (k *Keypad) CanRelease() bool {
	return k.latched && k.now().Sub(k.pressedAt) >= ReleaseHold
}

// Release removes the latched key. Callers have to check CanRelease
// before calling it.
func (k *Keypad) Release() {
	k.latched = false
}
