package rotary

import (
	"sync"
	"sync/atomic"

	"panelcode-go/errcode"
)

// IRQPin is an input line that can call back on every level change.
type IRQPin interface {
	Get() bool
	SetIRQ(handler func()) error
	ClearIRQ() error
}

// PinSource samples both encoder lines from their change interrupts.
//
// The handler runs in interrupt context: it reads the two lines and does a
// non-blocking send into a shallow queue. Samples that do not fit are
// counted and lost, which shows up as a missed or reversed detent.
type PinSource struct {
	a, b IRQPin
	q    chan uint8

	mu     sync.Mutex
	closed bool

	drops uint32 // ISR drop counter
}

// NewPinSource arms change interrupts on a and b. depth is the queue length.
func NewPinSource(a, b IRQPin, depth int) (*PinSource, error) {
	if a == nil || b == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "rotary.source"}
	}
	if depth <= 0 {
		depth = 8
	}
	s := &PinSource{a: a, b: b, q: make(chan uint8, depth)}
	if err := a.SetIRQ(s.sample); err != nil {
		return nil, err
	}
	if err := b.SetIRQ(s.sample); err != nil {
		_ = a.ClearIRQ()
		return nil, err
	}
	return s, nil
}

// Phase reads both lines now.
func (s *PinSource) Phase() uint8 {
	var p uint8
	if s.a.Get() {
		p |= 0b10
	}
	if s.b.Get() {
		p |= 0b01
	}
	return p
}

func (s *PinSource) sample() {
	select {
	case s.q <- s.Phase():
	default:
		atomic.AddUint32(&s.drops, 1) // protect ISR path
	}
}

func (s *PinSource) Samples() <-chan uint8 { return s.q }

// Drops reports samples lost to a full queue.
func (s *PinSource) Drops() uint32 { return atomic.LoadUint32(&s.drops) }

// Close disarms the interrupts. The sample channel is left open so that a
// late interrupt never sends on a closed channel.
func (s *PinSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	errA := s.a.ClearIRQ()
	errB := s.b.ClearIRQ()
	if errA != nil {
		return errA
	}
	return errB
}
