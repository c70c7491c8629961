package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func writeROM(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad(t *testing.T) {
	rom := []byte{0x60, 0x05, 0x70, 0x05}
	path := writeROM(t, rom)

	data, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, rom, data)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeROM(t, nil)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOversizedROM(t *testing.T) {
	path := writeROM(t, make([]byte, MaxROMSize+1))

	_, err := Load(path)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooLarge))
}

func TestLoadMaximumSize(t *testing.T) {
	path := writeROM(t, make([]byte, MaxROMSize))

	_, err := Load(path)
	assert.NoError(t, err)
}
