package emulator

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/cpu"
	"github.com/retroenv/chip8emu/internal/screen"
	"github.com/retroenv/retrogolib/assert"
)

// fakeFrontend implements Frontend for tests. It reports the configured
// key codes on every poll and requests termination after a number of
// presented frames.
type fakeFrontend struct {
	keys      []byte
	quitAfter int

	polls    int
	presents int
	frames   []screen.Frame
}

func (f *fakeFrontend) Poll() ([]byte, bool) {
	f.polls++
	return f.keys, f.presents >= f.quitAfter
}

func (f *fakeFrontend) Present(frame screen.Frame) error {
	f.presents++
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeFrontend) Close() {}

func newTestEmulator(t *testing.T) *Emulator {
	t.Helper()
	emu, err := New(config.CreateLogger(false, true), Config{})
	assert.NoError(t, err)
	return emu
}

func TestNewLoadsBuiltinSprites(t *testing.T) {
	emu := newTestEmulator(t)

	assert.Equal(t, byte(0xF0), emu.mem.Read(0x000))
	assert.Equal(t, byte(0x80), emu.mem.Read(0x04F))
}

func TestLoadROM(t *testing.T) {
	emu := newTestEmulator(t)

	emu.LoadROM([]byte{0x60, 0x05})

	assert.Equal(t, byte(0x60), emu.mem.Read(0x200))
	assert.Equal(t, byte(0x05), emu.mem.Read(0x201))
}

func TestRunUntilQuit(t *testing.T) {
	emu := newTestEmulator(t)
	// jump to self
	emu.LoadROM([]byte{0x12, 0x00})

	frontend := &fakeFrontend{quitAfter: 1}
	err := emu.Run(context.Background(), frontend)

	assert.NoError(t, err)
	assert.True(t, frontend.presents >= 1)
	assert.Equal(t, uint16(0x200), emu.cpu.PC())
}

func TestRunReturnsExecutionError(t *testing.T) {
	emu := newTestEmulator(t)
	emu.LoadROM([]byte{0xFF, 0xFF})

	frontend := &fakeFrontend{quitAfter: 1000}
	err := emu.Run(context.Background(), frontend)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrUnknownOpcode))
}

func TestRunContextCancellation(t *testing.T) {
	emu := newTestEmulator(t)
	emu.LoadROM([]byte{0x12, 0x00})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Run(ctx, &fakeFrontend{quitAfter: 1000})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunLatchesHeldKeys(t *testing.T) {
	emu := newTestEmulator(t)
	emu.LoadROM([]byte{0x12, 0x00})

	frontend := &fakeFrontend{keys: []byte{0x5}, quitAfter: 1}
	err := emu.Run(context.Background(), frontend)
	assert.NoError(t, err)

	// the key stays latched, its hold duration has not elapsed
	assert.True(t, emu.keypad.IsPressed(0x5))
}

func TestRunPresentsFrames(t *testing.T) {
	emu := newTestEmulator(t)
	// draw the glyph for digit 0 at (0, 0), then loop
	emu.LoadROM([]byte{0xF1, 0x29, 0xD1, 0x15, 0x12, 0x04})

	frontend := &fakeFrontend{quitAfter: 2}
	err := emu.Run(context.Background(), frontend)
	assert.NoError(t, err)

	last := frontend.frames[len(frontend.frames)-1]
	assert.Equal(t, byte(1), last[0][0])
}
