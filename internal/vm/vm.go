// Package vm wires the interpreter to its host collaborators and runs
// the outer emulation loop.
package vm

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"github.com/chirpvm/chirp/internal/cpu"
	"github.com/chirpvm/chirp/internal/display"
	"github.com/chirpvm/chirp/internal/input"
	"github.com/chirpvm/chirp/internal/memory"
)

// Video presents the framebuffer on a host display. The run loop calls
// it after every cycle that changed the screen.
type Video interface {
	Render(screen *display.Screen) error
}

// VM is an emulated CHIP-8 machine.
type VM struct {
	logger *log.Logger
	cpu    *cpu.CPU
	screen *display.Screen
	keys   input.Device
	video  Video
}

// New builds a machine around the given program image. video may be nil
// for headless operation.
func New(logger *log.Logger, rom []byte, keys input.Device, video Video) (*VM, error) {
	mem, err := memory.New(rom)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	screen := display.New()
	return &VM{
		logger: logger,
		cpu:    cpu.New(logger, mem, screen, keys),
		screen: screen,
		keys:   keys,
		video:  video,
	}, nil
}

// SetTrace enables instruction tracing on the interpreter.
func (vm *VM) SetTrace(enabled bool) {
	vm.cpu.SetTrace(enabled)
}

// Run executes cycles until the host requests a close or ctx is
// cancelled. Each turn runs one interpreter cycle, presents the screen
// if it changed, then refreshes the key latch from the host event
// source. Close requests are observed between cycles, not mid
// instruction.
func (vm *VM) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if vm.keys.CloseRequested() {
			return nil
		}

		if err := vm.cpu.Step(); err != nil {
			return err
		}

		if vm.screen.Dirty() {
			if vm.video != nil {
				if err := vm.video.Render(vm.screen); err != nil {
					return fmt.Errorf("presenting frame: %w", err)
				}
			}
			vm.screen.Rendered()
		}

		vm.keys.Pump()
	}
}
