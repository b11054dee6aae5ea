// Package input defines the key state surface between the interpreter
// and the host input layer.
package input

// NumKeys is the size of the CHIP-8 keypad, keys 0x0 to 0xF.
const NumKeys = 16

// Device is the interpreter-facing side of the keypad. The interpreter
// only reads key state or blocks awaiting a press; mutating the state is
// the host event pump's responsibility.
type Device interface {
	// Pump drains pending host events into the key state. Called by the
	// run loop once per cycle.
	Pump()

	// WaitKey blocks until a key transitions to pressed and returns it.
	WaitKey() uint8

	// IsKeyDown reports whether the given key is currently pressed.
	IsKeyDown(key uint8) bool

	// CloseRequested reports whether the host asked to quit.
	CloseRequested() bool
}

// Latch holds the shared keypad state: 16 key booleans, the most recent
// key press and a close request flag. Host integrations embed it and
// feed it from their event source.
type Latch struct {
	keys     [NumKeys]bool
	lastKey  uint8
	pressed  bool
	closeReq bool
}

// Set records a key transition coming from the host. A press also
// becomes observable through TakeKey.
func (l *Latch) Set(key uint8, down bool) {
	if key >= NumKeys {
		return
	}
	l.keys[key] = down
	if down {
		l.lastKey = key
		l.pressed = true
	}
}

// TakeKey consumes the most recent key press. The second return value is
// false if no press happened since the last call.
func (l *Latch) TakeKey() (uint8, bool) {
	if !l.pressed {
		return 0, false
	}
	l.pressed = false
	return l.lastKey, true
}

// RequestClose raises the close request flag.
func (l *Latch) RequestClose() {
	l.closeReq = true
}

// IsKeyDown reports whether the given key is currently pressed.
func (l *Latch) IsKeyDown(key uint8) bool {
	if key >= NumKeys {
		return false
	}
	return l.keys[key]
}

// CloseRequested reports whether a close was requested.
func (l *Latch) CloseRequested() bool {
	return l.closeReq
}
