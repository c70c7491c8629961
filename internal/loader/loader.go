// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/memory"
)

// MaxROMSize is the largest ROM image that fits into the program space
// of the virtual machine.
const MaxROMSize = memory.Size - memory.ProgramStart

// ErrROMTooLarge is returned when the ROM image does not fit into the
// program space.
var ErrROMTooLarge = errors.New("ROM image exceeds program space")

// Load reads a ROM file from disk and validates that it fits into the
// program space. The memory itself does not validate program length,
// the check lives here on the loading side.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("file %s: ROM image is empty", path)
	}
	if len(data) > MaxROMSize {
		return nil, fmt.Errorf("file %s has %d bytes, maximum is %d: %w",
			path, len(data), MaxROMSize, ErrROMTooLarge)
	}

	return data, nil
}
