package sdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/chirpvm/chirp/internal/input"
)

// waitKeyPollMillis is how long WaitKey sleeps between event polls,
// roughly the duration of one instruction.
const waitKeyPollMillis = 2

// Keyboard pumps SDL events into a key latch and implements the input
// device the interpreter reads from. NewVideo must have initialised SDL
// before the first Pump call.
type Keyboard struct {
	latch input.Latch
}

// NewKeyboard returns a keyboard with all keys released.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Pump drains pending SDL events into the latch.
func (k *Keyboard) Pump() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			code := keymap(t.Keysym.Scancode)
			if code < 0 {
				continue
			}
			k.latch.Set(uint8(code), t.GetType() == sdl.KEYDOWN)
		case *sdl.QuitEvent:
			k.latch.RequestClose()
		}
	}
}

// WaitKey blocks until a key transitions to pressed and returns it.
// A close request arriving during the wait is only observed after the
// wait completes, the run loop checks it between cycles.
func (k *Keyboard) WaitKey() uint8 {
	k.latch.TakeKey() // drop any press from before the wait
	for {
		k.Pump()
		if key, ok := k.latch.TakeKey(); ok {
			return key
		}
		sdl.Delay(waitKeyPollMillis)
	}
}

// IsKeyDown reports whether the given key is currently pressed.
func (k *Keyboard) IsKeyDown(key uint8) bool {
	return k.latch.IsKeyDown(key)
}

// CloseRequested reports whether the window was closed.
func (k *Keyboard) CloseRequested() bool {
	return k.latch.CloseRequested()
}

// keymap maps a QWERTY keyboard to the CHIP-8 keypad:
//
//	+--------+--------+--------+--------+
//	| 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
//	+--------+--------+--------+--------+
//	| Q -> 4 | W -> 5 | E -> 6 | R -> D |
//	+--------+--------+--------+--------+
//	| A -> 7 | S -> 8 | D -> 9 | F -> E |
//	+--------+--------+--------+--------+
//	| Z -> A | X -> 0 | C -> B | V -> F |
//	+--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}
