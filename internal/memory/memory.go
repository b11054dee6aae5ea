// Package memory implements the 4KB address space of the CHIP-8 machine.
package memory

import (
	"fmt"
)

// Memory layout constants.
const (
	// Size is the total amount of addressable memory.
	Size = 0x1000

	// ProgramStart is the address where loaded programs begin. Everything
	// below it is reserved for the interpreter, which in practice means
	// the built-in font table at address 0.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = Size - ProgramStart

	// GlyphSize is the height in bytes of one built-in font glyph.
	GlyphSize = 5
)

// fontset holds the 16 built-in hexadecimal digit glyphs, 5 bytes each.
// Glyph d occupies bytes 5d..5d+4.
var fontset = [16 * GlyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// OutOfBoundsError is returned for any access outside the address space.
// It is a fatal fault: a well-formed program never triggers it.
type OutOfBoundsError struct {
	Addr   uint16
	Length int
}

func (e *OutOfBoundsError) Error() string {
	if e.Length > 1 {
		return fmt.Sprintf("memory access out of bounds: %d bytes at %04X", e.Length, e.Addr)
	}
	return fmt.Sprintf("memory access out of bounds: address %04X", e.Addr)
}

// Memory is the linear byte store of the machine. The font table lives at
// address 0 and the program image at ProgramStart; it is never resized.
type Memory struct {
	ram [Size]uint8
}

// New creates a Memory seeded with the font table and the given program
// image at ProgramStart. Bytes past the image stay zero.
func New(rom []byte) (*Memory, error) {
	if len(rom) > MaxProgramSize {
		return nil, fmt.Errorf("program size %d exceeds maximum of %d bytes", len(rom), MaxProgramSize)
	}
	m := &Memory{}
	copy(m.ram[:], fontset[:])
	copy(m.ram[ProgramStart:], rom)
	return m, nil
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) (uint8, error) {
	if addr >= Size {
		return 0, &OutOfBoundsError{Addr: addr}
	}
	return m.ram[addr], nil
}

// Write stores b at addr.
func (m *Memory) Write(addr uint16, b uint8) error {
	if addr >= Size {
		return &OutOfBoundsError{Addr: addr}
	}
	m.ram[addr] = b
	return nil
}

// ReadWord returns the big-endian 16-bit value at addr. Instruction words
// are fetched through this.
func (m *Memory) ReadWord(addr uint16) (uint16, error) {
	if int(addr)+1 >= Size {
		return 0, &OutOfBoundsError{Addr: addr, Length: 2}
	}
	return uint16(m.ram[addr])<<8 | uint16(m.ram[addr+1]), nil
}

// Slice returns a view of length bytes starting at addr. The view shares
// the backing store, so writes through it mutate memory directly; no copy
// is made.
func (m *Memory) Slice(addr uint16, length uint16) ([]byte, error) {
	if int(addr)+int(length) > Size {
		return nil, &OutOfBoundsError{Addr: addr, Length: int(length)}
	}
	return m.ram[addr : addr+length], nil
}
