// Package display implements the monochrome framebuffer of the CHIP-8
// machine and its XOR sprite compositing.
package display

// Screen dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Screen is a 64x32 monochrome framebuffer. Cells are stored row-major,
// each either on or off. A dirty flag tells the presenting frontend when
// the contents changed.
type Screen struct {
	cells [Width * Height]uint8
	dirty bool
}

// New returns a cleared screen.
func New() *Screen {
	return &Screen{}
}

// Clear turns every cell off.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = 0
	}
	s.dirty = true
}

// SetPixel sets the cell at x,y. Coordinates must already be in bounds,
// callers apply wraparound before calling.
func (s *Screen) SetPixel(x, y int, on bool) {
	v := uint8(0)
	if on {
		v = 1
	}
	s.cells[x+y*Width] = v
}

// GetPixel reports whether the cell at x,y is on. Coordinates must
// already be in bounds.
func (s *Screen) GetPixel(x, y int) bool {
	return s.cells[x+y*Width] == 1
}

// Draw composites a sprite at x,y and reports whether any set sprite bit
// landed on a cell that was already on.
//
// Each sprite byte is one row of 8 pixels, most significant bit first.
// Set bits toggle the destination cell (XOR), zero bits leave it alone.
// Coordinates wrap around the screen edges instead of clipping. Drawing
// the same sprite twice at the same location restores the prior state.
func (s *Screen) Draw(x, y int, sprite []byte) bool {
	collision := false
	for j, row := range sprite {
		for i := 0; i < 8; i++ {
			if row>>(7-i)&0x01 != 1 {
				continue
			}
			xi := (x + i) % Width
			yj := (y + j) % Height
			prev := s.GetPixel(xi, yj)
			if prev {
				collision = true
			}
			s.SetPixel(xi, yj, !prev)
		}
	}
	s.dirty = true
	return collision
}

// Dirty reports whether the screen changed since the last Rendered call.
func (s *Screen) Dirty() bool {
	return s.dirty
}

// Rendered marks the current contents as presented.
func (s *Screen) Rendered() {
	s.dirty = false
}
