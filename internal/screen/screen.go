// Package screen implements the monochrome framebuffer of the CHIP-8
// virtual machine.
//
// The framebuffer is a fixed 64x32 grid of binary pixels. Sprites are
// composited onto it with XOR, drawing a sprite twice at the same
// position restores the previous state. Coordinates wrap around both
// screen edges instead of clipping.
package screen

import "time"

const (
	// Width is the framebuffer width in pixels.
	Width = 64
	// Height is the framebuffer height in pixels.
	Height = 32
)

// FlushInterval is the minimum real-time duration between two flushes
// of the framebuffer to the display frontend.
const FlushInterval = 10 * time.Millisecond

// Frame is a snapshot of the framebuffer contents, every cell is 0 or 1.
type Frame [Height][Width]byte

// Screen represents the framebuffer and its display flush gate.
type Screen struct {
	pixels    Frame
	lastFlush time.Time

	now func() time.Time
}

// New creates a new cleared screen.
func New() *Screen {
	s := &Screen{
		now: time.Now,
	}
	s.lastFlush = s.now()
	return s
}

// Clear sets every pixel to 0.
func (s *Screen) Clear() {
	s.pixels = Frame{}
}

// DrawRow composites one 8 pixel wide sprite row onto the framebuffer at
// the given coordinates, most significant bit first. Each bit is XORed
// into the target pixel, the x coordinate wraps per pixel and the y
// coordinate wraps once per row. It returns true if any previously set
// pixel was cleared by the XOR.
func (s *Screen) DrawRow(row byte, x, y int) bool {
	erased := false
	y %= Height

	for bit := 0; bit < 8; bit++ {
		x %= Width

		pixel := (row >> (7 - bit)) & 1
		previous := s.pixels[y][x]
		current := previous ^ pixel
		s.pixels[y][x] = current

		if previous == 1 && current == 0 {
			erased = true
		}
		x++
	}
	return erased
}

// Pixel returns the pixel value 0 or 1 at the given coordinates.
func (s *Screen) Pixel(x, y int) byte {
	return s.pixels[y][x]
}

// Frame returns a snapshot copy of the framebuffer for presentation,
// the copy always observes a fully composited state.
func (s *Screen) Frame() Frame {
	return s.pixels
}

// CanFlush returns true if the minimum flush interval has elapsed since
// the last presented frame.
func (s *Screen) CanFlush() bool {
	return s.now().Sub(s.lastFlush) > FlushInterval
}

// MarkFlushed records the current time as the last flush time. It has to
// be called by the frontend driver after presenting a frame.
func (s *Screen) MarkFlushed() {
	s.lastFlush = s.now()
}
