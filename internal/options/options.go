// Package options contains the program options.
package options

// Program options of the emulator.
type Program struct {
	Input string // ROM file to run

	Scale int   // integer pixel magnification of the window
	Seed  int64 // random source seed, 0 uses a time-based seed

	Debug bool // enable debug logging and instruction tracing
	Quiet bool // only log errors
}

// NewProgram returns program options with default values.
func NewProgram() Program {
	return Program{
		Scale: 10,
	}
}
