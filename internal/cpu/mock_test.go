package cpu

import (
	"github.com/chirpvm/chirp/internal/input"
)

// keypad is a scripted input device for tests. Key state is set through
// the embedded latch, WaitKey returns a preset key immediately.
type keypad struct {
	input.Latch

	waitKey uint8
	pumped  int
}

func (k *keypad) Pump() {
	k.pumped++
}

func (k *keypad) WaitKey() uint8 {
	return k.waitKey
}
