// Package sdl provides the SDL2 host integration: a window presenting
// the framebuffer and a keyboard feeding the key latch.
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/chirpvm/chirp/internal/display"
)

const (
	backgroundColor = 0x1A237E
	pixelColor      = 0x9FA8DA
)

// Video renders the 64x32 framebuffer into an SDL window, scaling every
// cell to a square of scale host pixels.
type Video struct {
	window  *sdl.Window
	surface *sdl.Surface
	scale   int32
}

// NewVideo initialises SDL and opens the emulator window. Call Destroy
// before quitting.
func NewVideo(title string, scale int) (*Video, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		display.Width*int32(scale), display.Height*int32(scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	surface, err := window.GetSurface()
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("getting window surface: %w", err)
	}

	v := &Video{
		window:  window,
		surface: surface,
		scale:   int32(scale),
	}
	if err := v.surface.FillRect(nil, backgroundColor); err != nil {
		v.Destroy()
		return nil, fmt.Errorf("clearing surface: %w", err)
	}
	return v, window.UpdateSurface()
}

// Render presents the current framebuffer contents.
func (v *Video) Render(screen *display.Screen) error {
	if err := v.surface.FillRect(nil, backgroundColor); err != nil {
		return fmt.Errorf("clearing surface: %w", err)
	}
	for y := int32(0); y < display.Height; y++ {
		for x := int32(0); x < display.Width; x++ {
			if !screen.GetPixel(int(x), int(y)) {
				continue
			}
			rect := sdl.Rect{X: x * v.scale, Y: y * v.scale, W: v.scale, H: v.scale}
			if err := v.surface.FillRect(&rect, pixelColor); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}
	return v.window.UpdateSurface()
}

// Destroy closes the window and shuts SDL down.
func (v *Video) Destroy() {
	v.window.Destroy()
	sdl.Quit()
}
