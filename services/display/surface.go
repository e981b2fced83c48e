// Package display is the drawing surface used by the menu: a small set of
// primitives over any tinygo drivers.Displayer.
package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

var (
	Black = color.RGBA{A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Style is a text colour pair.
type Style struct {
	Fg, Bg color.RGBA
}

// Inverted swaps foreground and background.
func (s Style) Inverted() Style { return Style{Fg: s.Bg, Bg: s.Fg} }

// Surface is what the menu needs from a display.
type Surface interface {
	Clear() error
	Bounds() (w, h int16)
	GlyphSize() (w, h int16)
	DrawText(x, y int16, text string, st Style) error
	FillRect(x, y, w, h int16, c color.RGBA) error
	Flush() error
}

// Font pairs a tinyfont face with the metrics the layout needs.
// Offset is the distance from the top of a text row to the baseline.
type Font struct {
	Face   tinyfont.Fonter
	Width  int16
	Height int16
	Offset int16
}

// DefaultFont fits eight rows on a 64 pixel panel.
var DefaultFont = Font{Face: &tinyfont.Picopixel, Width: 4, Height: 8, Offset: 6}

// Canvas implements Surface on a drivers.Displayer.
type Canvas struct {
	d    drivers.Displayer
	font Font
	bg   color.RGBA
}

func NewCanvas(d drivers.Displayer, font Font, bg color.RGBA) *Canvas {
	if font.Face == nil {
		font = DefaultFont
	}
	return &Canvas{d: d, font: font, bg: bg}
}

func (c *Canvas) Bounds() (w, h int16)    { return c.d.Size() }
func (c *Canvas) GlyphSize() (w, h int16) { return c.font.Width, c.font.Height }

// Clear paints the whole panel with the background colour.
func (c *Canvas) Clear() error {
	w, h := c.d.Size()
	return c.FillRect(0, 0, w, h, c.bg)
}

func (c *Canvas) FillRect(x, y, w, h int16, col color.RGBA) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	return tinydraw.FilledRectangle(c.d, x, y, w, h, col)
}

// DrawText writes text with its row box at (x, y) filled in st.Bg.
func (c *Canvas) DrawText(x, y int16, text string, st Style) error {
	if text == "" {
		return nil
	}
	_, outbox := tinyfont.LineWidth(c.font.Face, text)
	if err := c.FillRect(x, y, int16(outbox), c.font.Height, st.Bg); err != nil {
		return err
	}
	tinyfont.WriteLine(c.d, c.font.Face, x, y+c.font.Offset, text, st.Fg)
	return nil
}

func (c *Canvas) Flush() error { return c.d.Display() }
