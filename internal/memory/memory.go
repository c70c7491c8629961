// Package memory implements the 4KB address space of the CHIP-8 virtual machine.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: built-in hexadecimal digit sprites (16 glyphs, 5 bytes each)
//	0x050-0x1FF: reserved interpreter area
//	0x200-0xFFF: user program space
package memory

import "errors"

const (
	// Size is the total size of the CHIP-8 address space in bytes.
	Size = 4096

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart = 0x200

	// SpriteSize is the size of a built-in digit glyph in bytes,
	// one byte per row of 8 pixels.
	SpriteSize = 5
)

// ErrSpritesLoaded is returned when the built-in sprites are loaded more
// than once. It signals a violation of the initialization order, the glyph
// region has to be untouched when the sprites are written.
var ErrSpritesLoaded = errors.New("built-in sprites already loaded")

// builtinSprites contains the 16 hexadecimal digit glyphs 0-F.
// Each glyph is 5 rows of 8 pixels, only the upper 4 pixel columns are used.
var builtinSprites = [16][SpriteSize]byte{
	{0xF0, 0x90, 0x90, 0x90, 0xF0}, // 0
	{0x20, 0x60, 0x20, 0x20, 0x70}, // 1
	{0xF0, 0x10, 0xF0, 0x80, 0xF0}, // 2
	{0xF0, 0x10, 0xF0, 0x10, 0xF0}, // 3
	{0x90, 0x90, 0xF0, 0x10, 0x10}, // 4
	{0xF0, 0x80, 0xF0, 0x10, 0xF0}, // 5
	{0xF0, 0x80, 0xF0, 0x90, 0xF0}, // 6
	{0xF0, 0x10, 0x20, 0x40, 0x40}, // 7
	{0xF0, 0x90, 0xF0, 0x90, 0xF0}, // 8
	{0xF0, 0x90, 0xF0, 0x10, 0xF0}, // 9
	{0xF0, 0x90, 0xF0, 0x90, 0x90}, // A
	{0xE0, 0x90, 0xE0, 0x90, 0xE0}, // B
	{0xF0, 0x80, 0x80, 0x80, 0xF0}, // C
	{0xE0, 0x90, 0x90, 0x90, 0xE0}, // D
	{0xF0, 0x80, 0xF0, 0x80, 0xF0}, // E
	{0xF0, 0x80, 0xF0, 0x80, 0x80}, // F
}

// Memory represents the CHIP-8 address space.
type Memory struct {
	data [Size]byte
}

// New creates a new zeroed memory instance.
func New() *Memory {
	return &Memory{}
}

// Read returns the byte stored at the given address.
func (m *Memory) Read(address uint16) byte {
	return m.data[address]
}

// Write stores a byte at the given address.
func (m *Memory) Write(address uint16, value byte) {
	m.data[address] = value
}

// LoadBuiltinSprites writes the 16 digit glyphs to the start of memory.
// It has to be called exactly once, before any program data is loaded.
// Programs are free to overwrite the glyph region later, the check only
// guards the initialization order.
func (m *Memory) LoadBuiltinSprites() error {
	for _, b := range m.data[:len(builtinSprites)*SpriteSize] {
		if b != 0 {
			return ErrSpritesLoaded
		}
	}

	address := uint16(0)
	for _, sprite := range builtinSprites {
		for _, row := range sprite {
			m.Write(address, row)
			address++
		}
	}
	return nil
}

// LoadProgram copies the given program image into memory starting at
// ProgramStart, overwriting whatever was stored there before. The length
// of the image is not validated, loading oversized images is the
// responsibility of the caller.
func (m *Memory) LoadProgram(data []byte) {
	copy(m.data[ProgramStart:], data)
}

// SpriteAddress returns the memory address of the built-in glyph for the
// given hexadecimal digit 0-15.
func SpriteAddress(digit byte) uint16 {
	return uint16(digit) * SpriteSize
}
