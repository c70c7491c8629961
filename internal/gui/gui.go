// Package gui implements the SDL based window frontend of the emulator.
//
// The window presents the 64x32 framebuffer at an integer magnification
// and translates the host keyboard into CHIP-8 key codes. The original
// 16-key pad is mapped onto the 1234/QWER/ASDF/ZXCV block.
package gui

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/screen"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	backgroundColor = [3]uint8{0x00, 0x00, 0x00}
	pixelColor      = [3]uint8{0xFF, 0xFF, 0xFF}
)

// keyMap translates host keycodes into CHIP-8 key codes 0x0-0xF.
// Unmapped keys are rejected here and never reach the keypad.
var keyMap = map[sdl.Keycode]byte{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,
}

// Window is an SDL window presenting the framebuffer and supplying
// key input. It implements the emulator Frontend interface.
type Window struct {
	win *sdl.Window
	ren *sdl.Renderer

	held map[sdl.Keycode]bool
}

// New initializes SDL and creates the emulator window with the given
// integer pixel magnification.
func New(title string, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(screen.Width*scale), int32(screen.Height*scale), sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	ren, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	if err := ren.SetLogicalSize(screen.Width, screen.Height); err != nil {
		return nil, fmt.Errorf("setting logical size: %w", err)
	}

	return &Window{
		win:  win,
		ren:  ren,
		held: map[sdl.Keycode]bool{},
	}, nil
}

// Poll processes pending SDL events and returns the currently held
// CHIP-8 key codes and whether the window requested termination.
func (w *Window) Poll() ([]byte, bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return nil, true

		case *sdl.KeyboardEvent:
			switch e.Type {
			case sdl.KEYDOWN:
				if e.Keysym.Sym == sdl.K_ESCAPE {
					return nil, true
				}
				w.held[e.Keysym.Sym] = true
			case sdl.KEYUP:
				delete(w.held, e.Keysym.Sym)
			}
		}
	}

	var keys []byte
	for keycode := range w.held {
		if code, ok := keyMap[keycode]; ok {
			keys = append(keys, code)
		}
	}
	return keys, false
}

// Present renders a framebuffer snapshot, mapping cleared pixels to the
// background color and set pixels to the foreground color.
func (w *Window) Present(frame screen.Frame) error {
	if err := w.ren.SetDrawColor(backgroundColor[0], backgroundColor[1], backgroundColor[2], 0xFF); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := w.ren.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := w.ren.SetDrawColor(pixelColor[0], pixelColor[1], pixelColor[2], 0xFF); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}

	for y := 0; y < screen.Height; y++ {
		for x := 0; x < screen.Width; x++ {
			if frame[y][x] == 0 {
				continue
			}
			rect := sdl.Rect{X: int32(x), Y: int32(y), W: 1, H: 1}
			if err := w.ren.FillRect(&rect); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}

	w.ren.Present()
	return nil
}

// Close destroys the window and shuts down SDL.
func (w *Window) Close() {
	_ = w.ren.Destroy()
	_ = w.win.Destroy()
	sdl.Quit()
}
