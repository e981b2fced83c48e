package display

import "image/color"

// Framebuffer is an in-memory drivers.Displayer.
type Framebuffer struct {
	w, h    int16
	pix     []color.RGBA
	flushes int
	// FlushErr, when set, is returned by Display.
	FlushErr error
}

func NewFramebuffer(w, h int16) *Framebuffer {
	return &Framebuffer{w: w, h: h, pix: make([]color.RGBA, int(w)*int(h))}
}

func (f *Framebuffer) Size() (x, y int16) { return f.w, f.h }

func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.pix[int(y)*int(f.w)+int(x)] = c
}

func (f *Framebuffer) Display() error {
	if f.FlushErr != nil {
		return f.FlushErr
	}
	f.flushes++
	return nil
}

// At returns the pixel at (x, y); out of range reads as zero.
func (f *Framebuffer) At(x, y int16) color.RGBA {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return color.RGBA{}
	}
	return f.pix[int(y)*int(f.w)+int(x)]
}

// Flushes counts successful Display calls.
func (f *Framebuffer) Flushes() int { return f.flushes }

// Count returns how many pixels in the rectangle equal c.
func (f *Framebuffer) Count(x, y, w, h int16, c color.RGBA) int {
	n := 0
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if f.At(xx, yy) == c {
				n++
			}
		}
	}
	return n
}
