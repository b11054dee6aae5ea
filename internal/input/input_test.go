package input

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLatchKeyState(t *testing.T) {
	l := &Latch{}
	assert.False(t, l.IsKeyDown(0xA))

	l.Set(0xA, true)
	assert.True(t, l.IsKeyDown(0xA))

	l.Set(0xA, false)
	assert.False(t, l.IsKeyDown(0xA))
}

func TestLatchTakeKey(t *testing.T) {
	l := &Latch{}

	_, ok := l.TakeKey()
	assert.False(t, ok)

	// Releases are not presses and must not become observable.
	l.Set(0x2, false)
	_, ok = l.TakeKey()
	assert.False(t, ok)

	l.Set(0x2, true)
	l.Set(0x5, true)
	key, ok := l.TakeKey()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x5), key)

	// A press is consumed exactly once.
	_, ok = l.TakeKey()
	assert.False(t, ok)
}

func TestLatchIgnoresOutOfRangeKeys(t *testing.T) {
	l := &Latch{}

	l.Set(NumKeys, true)
	assert.False(t, l.IsKeyDown(NumKeys))
	_, ok := l.TakeKey()
	assert.False(t, ok)
}

func TestLatchCloseRequest(t *testing.T) {
	l := &Latch{}
	assert.False(t, l.CloseRequested())

	l.RequestClose()
	assert.True(t, l.CloseRequested())
}
