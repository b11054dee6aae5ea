package vm

import (
	"context"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/chirpvm/chirp/internal/display"
	"github.com/chirpvm/chirp/internal/input"
	"github.com/chirpvm/chirp/internal/memory"
)

// keypad closes after a fixed number of pump calls.
type keypad struct {
	input.Latch

	pumped     int
	closeAfter int
}

func (k *keypad) Pump() {
	k.pumped++
	if k.pumped >= k.closeAfter {
		k.RequestClose()
	}
}

func (k *keypad) WaitKey() uint8 {
	return 0
}

// recorder counts frame presentations.
type recorder struct {
	frames int
}

func (r *recorder) Render(_ *display.Screen) error {
	r.frames++
	return nil
}

func TestRunStopsOnCloseRequest(t *testing.T) {
	keys := &keypad{closeAfter: 3}
	// Draw the zero glyph, then spin.
	machine, err := New(log.NewTestLogger(t), []byte{
		0xD0, 0x05, // DRW V0, V0, 5
		0x12, 0x02, // JP $202
	}, keys, &recorder{})
	assert.NoError(t, err)

	assert.NoError(t, machine.Run(context.Background()))
	assert.Equal(t, 3, keys.pumped)
}

func TestRunPresentsDirtyFrames(t *testing.T) {
	keys := &keypad{closeAfter: 4}
	video := &recorder{}
	machine, err := New(log.NewTestLogger(t), []byte{
		0xD0, 0x05, // DRW V0, V0, 5
		0x12, 0x02, // JP $202
	}, keys, video)
	assert.NoError(t, err)

	assert.NoError(t, machine.Run(context.Background()))

	// Only the draw cycle dirtied the screen, the jump cycles did not.
	assert.Equal(t, 1, video.frames)
	assert.True(t, machine.screen.GetPixel(0, 0))
}

func TestRunStopsOnFault(t *testing.T) {
	keys := &keypad{closeAfter: 100}
	machine, err := New(log.NewTestLogger(t), []byte{0x00, 0xEE}, keys, nil)
	assert.NoError(t, err)

	// RET on an empty stack is fatal.
	assert.Error(t, machine.Run(context.Background()))
}

func TestRunHonorsContext(t *testing.T) {
	keys := &keypad{closeAfter: 1 << 30}
	machine, err := New(log.NewTestLogger(t), []byte{0x12, 0x00}, keys, nil)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, machine.Run(ctx))
}

func TestNewRejectsOversizedROM(t *testing.T) {
	_, err := New(log.NewTestLogger(t), make([]byte, memory.MaxProgramSize+1), &keypad{}, nil)
	assert.Error(t, err)
}
