// Package cpu implements the CHIP-8 instruction interpreter.
//
// Follows the CHIP-8 technical reference found at
// http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/chirpvm/chirp/internal/display"
	"github.com/chirpvm/chirp/internal/input"
	"github.com/chirpvm/chirp/internal/memory"
)

// stackDepth is the number of nested calls the machine supports.
const stackDepth = 16

// Stack faults. Both indicate a malformed program and terminate
// interpretation.
var (
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("call stack underflow")
)

// CPU runs the fetch-decode-execute cycle. It owns its memory and screen
// for the lifetime of the emulation session and holds a handle to the
// host keypad, which it only ever reads.
type CPU struct {
	logger *log.Logger
	mem    *memory.Memory
	screen *display.Screen
	keys   input.Device

	pc    uint16             // program counter
	stack [stackDepth]uint16 // return addresses
	sp    uint8              // stack pointer
	v     [16]uint8          // general purpose registers, VF doubles as flags
	i     uint16             // address register
	dt    uint8              // delay timer

	rng   *rand.Rand
	trace bool
}

// New returns a CPU ready to execute at the program start address.
func New(logger *log.Logger, mem *memory.Memory, screen *display.Screen, keys input.Device) *CPU {
	return &CPU{
		logger: logger,
		mem:    mem,
		screen: screen,
		keys:   keys,
		pc:     memory.ProgramStart,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetTrace enables debug logging of every executed instruction.
func (c *CPU) SetTrace(enabled bool) {
	c.trace = enabled
}

// Step executes one cycle: tick the delay timer, fetch the instruction
// word at pc, decode it and dispatch. pc is advanced by 2 before
// dispatch, opcodes that transfer control override it.
//
// Unrecognized opcodes are tolerated as no-ops. Memory and stack bounds
// violations are fatal and surface as errors.
func (c *CPU) Step() error {
	if c.dt > 0 {
		c.dt--
	}

	addr := c.pc
	opcode, err := c.mem.ReadWord(addr)
	if err != nil {
		return fmt.Errorf("fetching instruction at %04X: %w", addr, err)
	}

	x := uint8(opcode>>8) & 0x0F   // lower 4 bits of the high byte
	y := uint8(opcode>>4) & 0x0F   // upper 4 bits of the low byte
	n := uint8(opcode) & 0x0F      // lowest 4 bits
	kk := uint8(opcode)            // lowest 8 bits
	nnn := opcode & 0x0FFF         // lowest 12 bits

	c.pc += 2

	if c.trace {
		c.traceInstruction(addr, opcode)
	}

	if err := c.execute(opcode, x, y, n, kk, nnn); err != nil {
		return fmt.Errorf("executing opcode %04X at %04X: %w", opcode, addr, err)
	}
	return nil
}

// execute dispatches a decoded instruction. Unknown patterns fall
// through silently.
func (c *CPU) execute(opcode uint16, x, y, n, kk uint8, nnn uint16) error {
	switch opcode & 0xF000 {
	case 0x0000:
		switch kk {
		case 0xE0: // CLS
			c.screen.Clear()
		case 0xEE: // RET
			if c.sp == 0 {
				return ErrStackUnderflow
			}
			c.sp--
			c.pc = c.stack[c.sp]
		}
	case 0x1000: // JP nnn
		c.pc = nnn
	case 0x2000: // CALL nnn
		if c.sp == stackDepth {
			return ErrStackOverflow
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = nnn
	case 0x3000: // SE Vx, kk
		if c.v[x] == kk {
			c.pc += 2
		}
	case 0x4000: // SNE Vx, kk
		if c.v[x] != kk {
			c.pc += 2
		}
	case 0x5000:
		if n == 0x0 { // SE Vx, Vy
			if c.v[x] == c.v[y] {
				c.pc += 2
			}
		}
	case 0x6000: // LD Vx, kk
		c.v[x] = kk
	case 0x7000: // ADD Vx, kk
		c.v[x] += kk
	case 0x8000:
		c.executeALU(x, y, n)
	case 0x9000:
		if n == 0x0 { // SNE Vx, Vy
			if c.v[x] != c.v[y] {
				c.pc += 2
			}
		}
	case 0xA000: // LD I, nnn
		c.i = nnn
	case 0xB000: // JP V0, nnn
		c.pc = nnn + uint16(c.v[0])
	case 0xC000: // RND Vx, kk
		c.v[x] = uint8(c.rng.Intn(256)) & kk
	case 0xD000: // DRW Vx, Vy, n
		sprite, err := c.mem.Slice(c.i, uint16(n))
		if err != nil {
			return err
		}
		if c.screen.Draw(int(c.v[x]), int(c.v[y]), sprite) {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}
	case 0xE000:
		switch kk {
		case 0x9E: // SKP Vx
			if c.keys.IsKeyDown(c.v[x]) {
				c.pc += 2
			}
		case 0xA1: // SKNP Vx
			if !c.keys.IsKeyDown(c.v[x]) {
				c.pc += 2
			}
		}
	case 0xF000:
		return c.executeMisc(x, kk)
	}
	return nil
}

// executeALU handles the 8xyN register operations.
func (c *CPU) executeALU(x, y, n uint8) {
	switch n {
	case 0x0: // LD Vx, Vy
		c.v[x] = c.v[y]
	case 0x1: // OR Vx, Vy
		c.v[x] |= c.v[y]
	case 0x2: // AND Vx, Vy
		c.v[x] &= c.v[y]
	case 0x3: // XOR Vx, Vy
		c.v[x] ^= c.v[y]
	case 0x4: // ADD Vx, Vy
		sum := uint16(c.v[x]) + uint16(c.v[y])
		if sum > 255 {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}
		c.v[x] = uint8(sum)
	case 0x5: // SUB Vx, Vy
		// VF is 1 when the signed result is negative, a borrow occurred.
		if c.v[x] < c.v[y] {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}
		c.v[x] -= c.v[y]
	case 0x6: // SHR Vx
		c.v[0xF] = c.v[x] & 0x01
		c.v[x] >>= 1
	case 0x7: // SUBN Vx, Vy
		if c.v[y] < c.v[x] {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}
		c.v[x] = c.v[y] - c.v[x]
	case 0xE: // SHL Vx
		// VF holds the raw masked high bit, 0x00 or 0x80, not a
		// normalized 0/1.
		c.v[0xF] = c.v[x] & 0x80
		c.v[x] <<= 1
	}
}

// executeMisc handles the FxNN operations.
func (c *CPU) executeMisc(x, kk uint8) error {
	switch kk {
	case 0x07: // LD Vx, DT
		c.v[x] = c.dt
	case 0x0A: // LD Vx, K
		// The whole cycle suspends until the keypad reports a press.
		c.v[x] = c.keys.WaitKey()
	case 0x15: // LD DT, Vx
		c.dt = c.v[x]
	case 0x1E: // ADD I, Vx
		c.i += uint16(c.v[x])
	case 0x29: // LD F, Vx
		c.i = uint16(c.v[x]) * memory.GlyphSize
	case 0x33: // LD B, Vx
		digits, err := c.mem.Slice(c.i, 3)
		if err != nil {
			return err
		}
		digits[0] = c.v[x] / 100 % 10
		digits[1] = c.v[x] / 10 % 10
		digits[2] = c.v[x] % 10
	case 0x55: // LD [I], Vx
		dst, err := c.mem.Slice(c.i, uint16(x)+1)
		if err != nil {
			return err
		}
		copy(dst, c.v[:x+1])
	case 0x65: // LD Vx, [I]
		src, err := c.mem.Slice(c.i, uint16(x)+1)
		if err != nil {
			return err
		}
		copy(c.v[:x+1], src)
	}
	return nil
}
