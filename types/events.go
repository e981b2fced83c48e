package types

import "strconv"

// NumKeys is the number of keys on the panel key matrix.
const NumKeys = 12

// ---- Input sources ----

type SourceKind uint8

const (
	SourceButton SourceKind = iota
	SourceKey
	SourceEncoder
)

// InputSource identifies the physical origin of an event.
// Index is only meaningful for SourceKey.
type InputSource struct {
	Kind  SourceKind
	Index uint8
}

func Button() InputSource  { return InputSource{Kind: SourceButton} }
func Encoder() InputSource { return InputSource{Kind: SourceEncoder} }

// Key returns the source for key i. i must be in [0, NumKeys).
func Key(i int) InputSource { return InputSource{Kind: SourceKey, Index: uint8(i)} }

func (s InputSource) String() string {
	switch s.Kind {
	case SourceButton:
		return "button"
	case SourceKey:
		return "key" + strconv.Itoa(int(s.Index))
	case SourceEncoder:
		return "encoder"
	default:
		return "unknown"
	}
}

// ---- Input events ----

type EventKind uint8

const (
	EventPressed EventKind = iota
	EventReleased
	EventTurnedCW
	EventTurnedCCW
)

func (k EventKind) String() string {
	switch k {
	case EventPressed:
		return "pressed"
	case EventReleased:
		return "released"
	case EventTurnedCW:
		return "turned_cw"
	case EventTurnedCCW:
		return "turned_ccw"
	default:
		return "unknown"
	}
}

// InputEvent is the only value carried by the event bus.
// Position is the encoder's running detent count and is set for turn events only.
type InputEvent struct {
	Kind     EventKind
	Source   InputSource
	Position int32
}

func Pressed(src InputSource) InputEvent  { return InputEvent{Kind: EventPressed, Source: src} }
func Released(src InputSource) InputEvent { return InputEvent{Kind: EventReleased, Source: src} }

func TurnedCW(pos int32) InputEvent {
	return InputEvent{Kind: EventTurnedCW, Source: Encoder(), Position: pos}
}

func TurnedCCW(pos int32) InputEvent {
	return InputEvent{Kind: EventTurnedCCW, Source: Encoder(), Position: pos}
}

func (ev InputEvent) String() string {
	switch ev.Kind {
	case EventPressed, EventReleased:
		return ev.Kind.String() + " " + ev.Source.String()
	case EventTurnedCW, EventTurnedCCW:
		return ev.Kind.String() + " " + strconv.Itoa(int(ev.Position))
	default:
		return "unknown"
	}
}
