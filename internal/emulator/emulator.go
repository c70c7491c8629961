// Package emulator wires the CHIP-8 components together and drives them
// at their real-time cadences.
//
// The emulator polls the frontend for input, executes instructions and
// presents frames in a single tight loop. None of the components gate or
// block themselves, the loop checks the advisory time gates before every
// mutating call.
package emulator

import (
	"context"
	"fmt"

	"github.com/retroenv/chip8emu/internal/cpu"
	"github.com/retroenv/chip8emu/internal/keypad"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/chip8emu/internal/screen"
	"github.com/retroenv/chip8emu/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// Frontend abstracts the host window that presents frames and supplies
// key input. Implementations translate host key events into CHIP-8 key
// codes 0x0-0xF and reject everything else.
type Frontend interface {
	// Poll processes pending host events and returns the currently held
	// key codes and whether the host requested termination.
	Poll() (keys []byte, quit bool)
	// Present displays a framebuffer snapshot.
	Present(frame screen.Frame) error
	// Close releases the frontend resources.
	Close()
}

// Config contains the emulator settings.
type Config struct {
	// Trace enables instruction trace logging at debug level.
	Trace bool
	// Seed reseeds the random source when non-zero, for reproducible runs.
	Seed int64
}

// Emulator assembles and drives the virtual machine components.
type Emulator struct {
	cpu    *cpu.CPU
	mem    *memory.Memory
	timer  *timer.Timer
	screen *screen.Screen
	keypad *keypad.Keypad

	logger *log.Logger
}

// New creates a new emulator with the built-in digit sprites loaded.
func New(logger *log.Logger, cfg Config) (*Emulator, error) {
	mem := memory.New()
	if err := mem.LoadBuiltinSprites(); err != nil {
		return nil, fmt.Errorf("loading built-in sprites: %w", err)
	}

	c := cpu.New(logger, cfg.Trace)
	if cfg.Seed != 0 {
		c.SeedRandom(cfg.Seed)
	}

	return &Emulator{
		cpu:    c,
		mem:    mem,
		timer:  timer.New(),
		screen: screen.New(),
		keypad: keypad.New(),
		logger: logger,
	}, nil
}

// LoadROM copies the ROM image into memory at the program start address.
func (e *Emulator) LoadROM(data []byte) {
	e.mem.LoadProgram(data)
}

// Run drives the emulation loop until the frontend requests termination
// or the context is cancelled. Each iteration polls input, releases the
// key latch once its hold has elapsed and no key is held, executes one
// instruction if the step gate is open and presents a frame if the flush
// gate is open.
func (e *Emulator) Run(ctx context.Context, frontend Frontend) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		keys, quit := frontend.Poll()
		if quit {
			return nil
		}

		for _, code := range keys {
			e.keypad.Press(code)
		}
		if len(keys) == 0 && e.keypad.CanRelease() {
			e.keypad.Release()
		}

		if e.cpu.CanStep() {
			if err := e.cpu.Step(e.mem, e.timer, e.screen, e.keypad); err != nil {
				return fmt.Errorf("executing instruction: %w", err)
			}
		}

		if e.screen.CanFlush() {
			if err := frontend.Present(e.screen.Frame()); err != nil {
				return fmt.Errorf("presenting frame: %w", err)
			}
			e.screen.MarkFlushed()
		}
	}
}
