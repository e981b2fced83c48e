package menu

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelcode-go/services/display"
)

var mono = display.Style{Fg: display.White, Bg: display.Black}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item %d", i)
	}
	return out
}

func TestSelectItemScrollsForward(t *testing.T) {
	m := New(items(6), 4, mono)
	m.SelectItem(5)
	assert.Equal(t, 5, m.Selected())
	assert.Equal(t, 2, m.WindowStart())
	assert.Equal(t, []int{2, 3, 4, 5}, m.Visible())
}

func TestSelectItemScrollsBackMinimally(t *testing.T) {
	m := New(items(10), 3, mono)
	m.SelectItem(9)
	assert.Equal(t, 7, m.WindowStart())

	m.SelectItem(8) // still visible: no scroll
	assert.Equal(t, 7, m.WindowStart())

	m.SelectItem(4)
	assert.Equal(t, 4, m.WindowStart())
	assert.Equal(t, 4, m.Selected())
}

func TestSelectItemOutOfRangeIsNoop(t *testing.T) {
	m := New(items(6), 4, mono)
	m.SelectItem(5)
	m.ScrollCaption(2)
	before := *m

	m.SelectItem(6)
	m.SelectItem(-1)
	m.SelectItem(11)
	assert.Equal(t, before, *m)
}

func TestWindowInvariantHolds(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		for wl := 1; wl <= 6; wl++ {
			m := New(items(n), wl, mono)
			for _, idx := range []int{0, n - 1, n / 2, 0, n + 3, -2, n - 1, 1} {
				m.SelectItem(idx)
				assert.LessOrEqual(t, m.WindowStart(), m.Selected())
				assert.Less(t, m.Selected(), m.WindowStart()+m.WindowLen())
			}
		}
	}
}

func TestSelectItemResetsCaption(t *testing.T) {
	m := New(items(3), 2, mono)
	m.ScrollCaption(3)
	assert.Equal(t, 3, m.CaptionOffset())
	m.SelectItem(1)
	assert.Equal(t, 0, m.CaptionOffset())

	m.ScrollCaption(-4)
	assert.Equal(t, 0, m.CaptionOffset())
}

func TestNewClampsWindow(t *testing.T) {
	m := New(items(3), 0, mono)
	assert.Equal(t, 1, m.WindowLen())
}

func TestDrawHighlightsSelectedRow(t *testing.T) {
	rec := newRecordingSurface(64, 32, 4, 8)
	m := New(items(6), 4, mono)
	m.SelectItem(5)

	require.NoError(t, m.Draw(rec))

	// clear region first
	require.NotEmpty(t, rec.ops)
	assert.Equal(t, "rect 0,0 64x32 bg", rec.ops[0])

	assert.Equal(t, []string{
		"rect 0,0 64x32 bg",
		"text 2,0 item 2 normal",
		"text 2,8 item 3 normal",
		"text 2,16 item 4 normal",
		"rect 0,24 64x8 fg",
		"text 2,24 item 5 inverted",
	}, rec.ops)
}

func TestDrawShortList(t *testing.T) {
	rec := newRecordingSurface(64, 32, 4, 8)
	m := New([]string{"only"}, 4, mono)
	require.NoError(t, m.Draw(rec))
	assert.Equal(t, []string{
		"rect 0,0 64x32 bg",
		"rect 0,0 64x8 fg",
		"text 2,0 only inverted",
	}, rec.ops)
}

func TestDrawCaptionOffset(t *testing.T) {
	rec := newRecordingSurface(64, 16, 4, 8)
	m := New([]string{"Breakout", "Tetris"}, 2, mono)
	m.ScrollCaption(5)
	require.NoError(t, m.Draw(rec))
	assert.Contains(t, rec.ops, "text 2,0 out inverted")
	assert.Contains(t, rec.ops, "text 2,8 Tetris normal")

	rec.ops = nil
	m.ScrollCaption(40)
	require.NoError(t, m.Draw(rec))
	assert.NotContains(t, rec.ops, "text 2,0 out inverted")
}

// -----------------------------------------------------------------------------
// recording surface
// -----------------------------------------------------------------------------

type recordingSurface struct {
	w, h, gw, gh int16
	ops          []string
	flushes      int
	clears       int

	failDraw  error
	failFlush error
}

func newRecordingSurface(w, h, gw, gh int16) *recordingSurface {
	return &recordingSurface{w: w, h: h, gw: gw, gh: gh}
}

func (r *recordingSurface) Clear() error              { r.clears++; return nil }
func (r *recordingSurface) Bounds() (int16, int16)    { return r.w, r.h }
func (r *recordingSurface) GlyphSize() (int16, int16) { return r.gw, r.gh }

func (r *recordingSurface) DrawText(x, y int16, text string, st display.Style) error {
	if r.failDraw != nil {
		return r.failDraw
	}
	kind := "normal"
	if st == mono.Inverted() {
		kind = "inverted"
	}
	r.ops = append(r.ops, fmt.Sprintf("text %d,%d %s %s", x, y, text, kind))
	return nil
}

func (r *recordingSurface) FillRect(x, y, w, h int16, c color.RGBA) error {
	name := "bg"
	if c == mono.Fg {
		name = "fg"
	}
	r.ops = append(r.ops, fmt.Sprintf("rect %d,%d %dx%d %s", x, y, w, h, name))
	return nil
}

func (r *recordingSurface) Flush() error {
	if r.failFlush != nil {
		return r.failFlush
	}
	r.flushes++
	return nil
}
