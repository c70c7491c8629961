package memory

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestReadWrite(t *testing.T) {
	m := New()

	assert.Equal(t, byte(0), m.Read(0x300))

	m.Write(0x300, 0xAB)
	assert.Equal(t, byte(0xAB), m.Read(0x300))

	m.Write(Size-1, 0x01)
	assert.Equal(t, byte(0x01), m.Read(Size-1))
}

func TestLoadBuiltinSprites(t *testing.T) {
	m := New()

	err := m.LoadBuiltinSprites()
	assert.NoError(t, err)

	// glyph 0 occupies the first 5 bytes
	assert.Equal(t, byte(0xF0), m.Read(0x000))
	assert.Equal(t, byte(0x90), m.Read(0x001))
	assert.Equal(t, byte(0x90), m.Read(0x002))
	assert.Equal(t, byte(0x90), m.Read(0x003))
	assert.Equal(t, byte(0xF0), m.Read(0x004))

	// last byte of glyph F
	assert.Equal(t, byte(0x80), m.Read(0x04F))
	// nothing beyond the glyph region
	assert.Equal(t, byte(0), m.Read(0x050))
}

func TestLoadBuiltinSpritesTwice(t *testing.T) {
	m := New()

	assert.NoError(t, m.LoadBuiltinSprites())

	err := m.LoadBuiltinSprites()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpritesLoaded))
}

func TestLoadProgram(t *testing.T) {
	m := New()

	m.LoadProgram([]byte{0x60, 0x05, 0x70, 0x05})

	assert.Equal(t, byte(0x60), m.Read(ProgramStart))
	assert.Equal(t, byte(0x05), m.Read(ProgramStart+1))
	assert.Equal(t, byte(0x70), m.Read(ProgramStart+2))
	assert.Equal(t, byte(0x05), m.Read(ProgramStart+3))
}

func TestLoadProgramOverwrites(t *testing.T) {
	m := New()

	m.LoadProgram([]byte{0x11, 0x22})
	m.LoadProgram([]byte{0x33})

	assert.Equal(t, byte(0x33), m.Read(ProgramStart))
	assert.Equal(t, byte(0x22), m.Read(ProgramStart+1))
}

func TestSpriteAddress(t *testing.T) {
	tests := []struct {
		digit    byte
		expected uint16
	}{
		{0x0, 0x00},
		{0x1, 0x05},
		{0xA, 0x32},
		{0xF, 0x4B},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SpriteAddress(tt.digit))
	}
}
