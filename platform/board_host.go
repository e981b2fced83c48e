//go:build !(rp2040 || rp2350)

package platform

import (
	"image/color"
	"io"
	"sync"

	"tinygo.org/x/drivers"

	"panelcode-go/services/display"
	"panelcode-go/services/input"
	"panelcode-go/services/panel"
	"panelcode-go/services/rotary"
	"panelcode-go/types"
	"panelcode-go/x/mathx"
)

// Host is a panel made of fake pins. Tests and the simulator drive it
// through Press, Release and Turn.
type Host struct {
	Pins   *HostPinFactory
	Pinout Pinout
	Source *rotary.PinSource
	Board  panel.Board
	LEDs   *MemoryStrip
}

// cwOrder is the phase sequence for clockwise rotation (A in bit 1).
var cwOrder = [4]uint8{0b00, 0b10, 0b11, 0b01}

// NewHost builds a host board on d. console may be nil.
func NewHost(po Pinout, d drivers.Displayer, console io.Writer) (*Host, error) {
	pins := NewHostPinFactory()
	keys := make([]input.Pin, types.NumKeys)
	for i, n := range po.Keys {
		keys[i] = pins.ByNumber(n)
	}
	src, err := rotary.NewPinSource(pins.ByNumber(po.EncA), pins.ByNumber(po.EncB), 16)
	if err != nil {
		return nil, err
	}
	h := &Host{Pins: pins, Pinout: po, Source: src, LEDs: &MemoryStrip{}}
	status := pins.ByNumber(po.StatusLED)
	status.Set(false)
	h.Board = panel.Board{
		Button:       pins.ByNumber(po.Button),
		Keys:         keys,
		Encoder:      src,
		EncoderPhase: src.Phase(),
		Surface:      display.NewCanvas(d, display.DefaultFont, display.Black),
		Strip:        h.LEDs,
		StatusLED:    status,
	}
	if console != nil {
		h.Board.Console = console
	}
	return h, nil
}

// NewBoard returns an inert host board with an in-memory display.
func NewBoard(cfg types.PanelConfig) (panel.Board, error) {
	h, err := NewHost(MacroPad, display.NewFramebuffer(MacroPad.Width, MacroPad.Height), nil)
	if err != nil {
		return panel.Board{}, err
	}
	return h.Board, nil
}

func (h *Host) pin(src types.InputSource) *FakePin {
	switch src.Kind {
	case types.SourceButton:
		return h.Pins.ByNumber(h.Pinout.Button)
	case types.SourceKey:
		if int(src.Index) < len(h.Pinout.Keys) {
			return h.Pins.ByNumber(h.Pinout.Keys[src.Index])
		}
	case types.SourceEncoder:
	}
	return nil
}

func (h *Host) Press(src types.InputSource) {
	if p := h.pin(src); p != nil {
		p.Press()
	}
}

func (h *Host) Release(src types.InputSource) {
	if p := h.pin(src); p != nil {
		p.Release()
	}
}

// StatusLED reports the status LED level.
func (h *Host) StatusLED() bool { return h.Pins.ByNumber(h.Pinout.StatusLED).Get() }

// Turn walks the encoder lines through whole detents, one line per step.
// Positive detents turn clockwise.
func (h *Host) Turn(detents int) {
	a, b := h.Pins.ByNumber(h.Pinout.EncA), h.Pins.ByNumber(h.Pinout.EncB)
	dir := 1
	if detents < 0 {
		dir, detents = -1, -detents
	}
	idx := 0
	cur := h.Source.Phase()
	for i, p := range cwOrder {
		if p == cur {
			idx = i
		}
	}
	for n := 0; n < detents*rotary.DetentDivisor; n++ {
		idx = mathx.Wrap(idx+dir, len(cwOrder))
		next := cwOrder[idx]
		a.Set(next&0b10 != 0)
		b.Set(next&0b01 != 0)
	}
}

// MemoryStrip records the last frame written to it.
type MemoryStrip struct {
	mu     sync.Mutex
	last   []color.RGBA
	writes int
}

func (m *MemoryStrip) WriteColors(buf []color.RGBA) error {
	m.mu.Lock()
	m.last = append(m.last[:0], buf...)
	m.writes++
	m.mu.Unlock()
	return nil
}

func (m *MemoryStrip) Last() []color.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]color.RGBA(nil), m.last...)
}

func (m *MemoryStrip) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
