package memory

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func testMemory(t *testing.T) *Memory {
	t.Helper()

	m, err := New([]byte{1, 2, 3, 4, 5, 6, 7})
	assert.NoError(t, err)
	return m
}

func TestNewSeedsFontset(t *testing.T) {
	m := testMemory(t)

	// Address 20 is the first byte of the glyph for digit 4.
	b, err := m.Read(4 * GlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x90), b)

	// The last font byte sits right below the zeroed region.
	b, err = m.Read(16*GlyphSize - 1)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x80), b)

	b, err = m.Read(16 * GlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), b)
}

func TestNewLoadsProgram(t *testing.T) {
	m := testMemory(t)

	for i := uint16(0); i < 7; i++ {
		b, err := m.Read(ProgramStart + i)
		assert.NoError(t, err)
		assert.Equal(t, uint8(i+1), b)
	}

	// Bytes past the image stay zero.
	b, err := m.Read(ProgramStart + 7)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), b)
}

func TestNewRejectsOversizedProgram(t *testing.T) {
	_, err := New(make([]byte, MaxProgramSize+1))
	assert.Error(t, err)

	m, err := New(make([]byte, MaxProgramSize))
	assert.NoError(t, err)
	assert.NotNil(t, m)
}

func TestReadWrite(t *testing.T) {
	m := testMemory(t)

	err := m.Write(ProgramStart, 8)
	assert.NoError(t, err)

	b, err := m.Read(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint8(8), b)

	b, err = m.Read(ProgramStart + 1)
	assert.NoError(t, err)
	assert.Equal(t, uint8(2), b)
}

func TestReadWord(t *testing.T) {
	m := testMemory(t)

	w, err := m.ReadWord(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint16(1)<<8|2, w)
}

func TestSlice(t *testing.T) {
	m := testMemory(t)

	s, err := m.Slice(ProgramStart, 7)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7}, s)

	// The slice is a view, writes through it land in memory.
	s[0] = 9
	b, err := m.Read(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint8(9), b)
}

func TestOutOfBounds(t *testing.T) {
	m := testMemory(t)

	_, err := m.Read(Size)
	assert.Error(t, err)

	err = m.Write(Size, 1)
	assert.Error(t, err)

	_, err = m.ReadWord(Size - 1)
	assert.Error(t, err)

	_, err = m.Slice(Size-2, 3)
	assert.Error(t, err)

	// The upper bound itself is still addressable.
	_, err = m.Read(Size - 1)
	assert.NoError(t, err)
	_, err = m.ReadWord(Size - 2)
	assert.NoError(t, err)
	_, err = m.Slice(Size-2, 2)
	assert.NoError(t, err)
}
