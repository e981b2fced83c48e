// Package menu implements the scrollable selection list shown on the panel
// display and the navigator that drives it from input events.
package menu

import (
	"panelcode-go/services/display"
)

// Menu is the state of one menu invocation.
//
// The window invariant windowStart <= selected < windowStart+windowLen holds
// after every mutation.
type Menu struct {
	items         []string
	selected      int
	windowStart   int
	windowLen     int
	captionOffset int
	style         display.Style
}

// New creates a menu showing windowLen rows; windowLen is at least 1.
func New(items []string, windowLen int, style display.Style) *Menu {
	if windowLen < 1 {
		windowLen = 1
	}
	return &Menu{items: items, windowLen: windowLen, style: style}
}

func (m *Menu) Items() []string    { return m.items }
func (m *Menu) Selected() int      { return m.selected }
func (m *Menu) WindowStart() int   { return m.windowStart }
func (m *Menu) WindowLen() int     { return m.windowLen }
func (m *Menu) CaptionOffset() int { return m.captionOffset }

// SelectItem moves the selection to index, scrolling the window by the
// minimum amount. Out-of-range indices are ignored.
func (m *Menu) SelectItem(index int) {
	if index < 0 || index >= len(m.items) {
		return
	}
	m.selected = index
	m.captionOffset = 0

	for m.selected < m.windowStart {
		m.windowStart--
	}
	for m.selected >= m.windowStart+m.windowLen {
		m.windowStart++
	}
}

// ScrollCaption shifts the selected label left by offset characters.
func (m *Menu) ScrollCaption(offset int) {
	if offset < 0 {
		offset = 0
	}
	m.captionOffset = offset
}

// Visible returns the item indices currently inside the window.
func (m *Menu) Visible() []int {
	end := m.windowStart + m.windowLen
	if end > len(m.items) {
		end = len(m.items)
	}
	out := make([]int, 0, end-m.windowStart)
	for i := m.windowStart; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// Draw renders the visible window: the region is cleared, every visible row
// is drawn, and the selected row is drawn inverted on a filled bar.
func (m *Menu) Draw(s display.Surface) error {
	w, _ := s.Bounds()
	gw, gh := s.GlyphSize()
	textX := gw / 2

	if err := s.FillRect(0, 0, w, int16(m.windowLen)*gh, m.style.Bg); err != nil {
		return err
	}
	for row, i := range m.Visible() {
		y := int16(row) * gh
		label := m.items[i]
		st := m.style
		if i == m.selected {
			if err := s.FillRect(0, y, w, gh, m.style.Fg); err != nil {
				return err
			}
			label = shift(label, m.captionOffset)
			st = st.Inverted()
		}
		if err := s.DrawText(textX, y, label, st); err != nil {
			return err
		}
	}
	return nil
}

func shift(label string, n int) string {
	if n <= 0 {
		return label
	}
	r := []rune(label)
	if n >= len(r) {
		return ""
	}
	return string(r[n:])
}
