package main

import (
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
)

const upperHalf = '▀'

// Terminal is a drivers.Displayer backed by a tcell screen. Each cell shows
// two vertically stacked pixels: foreground is the top one, background the
// bottom one.
type Terminal struct {
	screen tcell.Screen
	w, h   int16

	mu  sync.Mutex
	pix []color.RGBA
}

func NewTerminal(s tcell.Screen, w, h int16) *Terminal {
	return &Terminal{screen: s, w: w, h: h, pix: make([]color.RGBA, int(w)*int(h))}
}

func (t *Terminal) Size() (x, y int16) { return t.w, t.h }

func (t *Terminal) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return
	}
	t.mu.Lock()
	t.pix[int(y)*int(t.w)+int(x)] = c
	t.mu.Unlock()
}

func (t *Terminal) at(x, y int) color.RGBA {
	if y >= int(t.h) {
		return color.RGBA{}
	}
	return t.pix[y*int(t.w)+x]
}

// Rows is the number of terminal rows the display occupies.
func (t *Terminal) Rows() int { return (int(t.h) + 1) / 2 }

// Display copies the pixel buffer to the screen.
func (t *Terminal) Display() error {
	t.mu.Lock()
	for row := 0; row < t.Rows(); row++ {
		for x := 0; x < int(t.w); x++ {
			st := tcell.StyleDefault.
				Foreground(rgb(t.at(x, 2*row))).
				Background(rgb(t.at(x, 2*row+1)))
			t.screen.SetContent(x, row, upperHalf, nil, st)
		}
	}
	t.mu.Unlock()
	t.screen.Show()
	return nil
}

// DrawLEDs paints one block per pixel on the row below the display.
func (t *Terminal) DrawLEDs(leds []color.RGBA) {
	row := t.Rows() + 1
	for i, c := range leds {
		st := tcell.StyleDefault.Foreground(rgb(c)).Background(tcell.ColorBlack)
		t.screen.SetContent(2*i, row, '●', nil, st)
	}
	t.screen.Show()
}

// DrawStatus writes a line of text under the LED row.
func (t *Terminal) DrawStatus(text string) {
	row := t.Rows() + 3
	w, _ := t.screen.Size()
	st := tcell.StyleDefault.Foreground(tcell.ColorGray)
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		t.screen.SetContent(x, row, r, nil, st)
		x++
	}
	for ; x < w; x++ {
		t.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
	t.screen.Show()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
