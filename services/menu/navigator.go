package menu

import (
	"context"
	"unicode/utf8"

	"panelcode-go/errcode"
	"panelcode-go/services/display"
	"panelcode-go/types"
	"panelcode-go/x/logx"
)

// State is the navigator's interaction state.
type State uint8

const (
	StateIdle      State = iota // rendered, waiting for input
	StateBrowsing               // selection changed, render pending
	StateCommitted              // button pressed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBrowsing:
		return "browsing"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Events is the navigator's view of a bus subscription.
type Events interface {
	Next(ctx context.Context) (types.InputEvent, error)
}

// Navigator runs menu interactions on a display from a stream of events.
type Navigator struct {
	items   []string
	surface display.Surface
	events  Events
	style   display.Style
	log     logx.Logger

	menu  *Menu
	state State
}

// NewNavigator sizes the window from the display height and the font's glyph height.
func NewNavigator(items []string, surface display.Surface, events Events, style display.Style) (*Navigator, error) {
	if len(items) == 0 || surface == nil || events == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "menu.navigator"}
	}
	_, h := surface.Bounds()
	_, gh := surface.GlyphSize()
	if gh <= 0 || h < gh {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "menu.navigator", Msg: "display shorter than one row"}
	}
	return &Navigator{
		items:   items,
		surface: surface,
		events:  events,
		style:   style,
		log:     logx.New("menu"),
	}, nil
}

// WindowLen is the number of rows the display can show.
func (n *Navigator) WindowLen() int {
	_, h := n.surface.Bounds()
	_, gh := n.surface.GlyphSize()
	return int(h / gh)
}

// Menu returns the state of the current (or last) invocation.
func (n *Navigator) Menu() *Menu  { return n.menu }
func (n *Navigator) State() State { return n.state }

// Choose shows a fresh menu and returns the index selected when the button is
// pressed. Key k selects item k, encoder turns scroll the selected caption,
// and every other event is ignored. It returns
// early only if ctx is done or the display fails.
func (n *Navigator) Choose(ctx context.Context) (int, error) {
	n.menu = New(n.items, n.WindowLen(), n.style)
	n.state = StateBrowsing

	if err := n.surface.Clear(); err != nil {
		return 0, errcode.Wrap(errcode.DisplayError, "menu.clear", err)
	}
	if err := n.render(); err != nil {
		return 0, err
	}

	for {
		ev, err := n.events.Next(ctx)
		if err != nil {
			return 0, err
		}
		switch ev.Kind {
		case types.EventPressed:
			switch ev.Source.Kind {
			case types.SourceButton:
				n.state = StateCommitted
				n.log.Info("committed", "index", n.menu.Selected(), "label", n.items[n.menu.Selected()])
				return n.menu.Selected(), nil
			case types.SourceKey:
				n.menu.SelectItem(int(ev.Source.Index))
				n.state = StateBrowsing
				if err := n.render(); err != nil {
					return 0, err
				}
			case types.SourceEncoder:
			}
		case types.EventTurnedCW, types.EventTurnedCCW:
			if !n.scrollCaption(ev.Kind == types.EventTurnedCW) {
				continue
			}
			if err := n.render(); err != nil {
				return 0, err
			}
		case types.EventReleased:
		}
	}
}

// scrollCaption moves the selected label one rune per detent, stopping at
// its last rune and at zero. It reports whether the offset changed.
func (n *Navigator) scrollCaption(forward bool) bool {
	off := n.menu.CaptionOffset()
	switch {
	case forward && off+1 < utf8.RuneCountInString(n.items[n.menu.Selected()]):
		off++
	case !forward && off > 0:
		off--
	default:
		return false
	}
	n.menu.ScrollCaption(off)
	return true
}

func (n *Navigator) render() error {
	if err := n.menu.Draw(n.surface); err != nil {
		return errcode.Wrap(errcode.DisplayError, "menu.draw", err)
	}
	if err := n.surface.Flush(); err != nil {
		return errcode.Wrap(errcode.DisplayError, "menu.flush", err)
	}
	n.state = StateIdle
	return nil
}
