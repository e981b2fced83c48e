// Package rotary decodes quadrature phase samples from a mechanical rotary
// encoder into detent events.
package rotary

import (
	"context"

	"panelcode-go/types"
	"panelcode-go/x/logx"
)

// DetentDivisor is the number of quarter steps in one mechanical click.
const DetentDivisor = 4

// transitions maps (previous<<2 | next) to a signed quarter step.
// Jumps that flip both lines at once are not valid Gray code and count as no motion.
var transitions = [16]int8{
	0,  // 00 -> 00
	-1, // 00 -> 01
	+1, // 00 -> 10
	0,  // 00 -> 11 glitch
	+1, // 01 -> 00
	0,  // 01 -> 01
	0,  // 01 -> 10 glitch
	-1, // 01 -> 11
	-1, // 10 -> 00
	0,  // 10 -> 01 glitch
	0,  // 10 -> 10
	+1, // 10 -> 11
	0,  // 11 -> 00 glitch
	+1, // 11 -> 01
	-1, // 11 -> 10
	0,  // 11 -> 11
}

// Delta returns the quarter step for a transition between two 2-bit phases.
func Delta(prev, next uint8) int8 {
	return transitions[(prev&0x3)<<2|next&0x3]
}

// PhaseSource delivers raw 2-bit phase samples (line A in bit 1, line B in bit 0).
type PhaseSource interface {
	Samples() <-chan uint8
}

// Publisher receives decoded events. Publish must not block.
type Publisher interface {
	Publish(types.InputEvent)
}

// Decoder holds the rotary state. It is owned by a single task.
type Decoder struct {
	last     uint8
	sub      int32
	position int32
}

// NewDecoder starts from the given resting phase.
func NewDecoder(initial uint8) *Decoder {
	return &Decoder{last: initial & 0x3}
}

func (d *Decoder) Position() int32 { return d.position }
func (d *Decoder) SubSteps() int32 { return d.sub }
func (d *Decoder) Phase() uint8    { return d.last }

// Feed applies one phase sample and returns a turn event when a full detent
// has accumulated in either direction.
func (d *Decoder) Feed(phase uint8) (types.InputEvent, bool) {
	phase &= 0x3
	d.sub += int32(Delta(d.last, phase))
	d.last = phase

	switch {
	case d.sub >= DetentDivisor:
		d.position++
		d.sub = 0
		return types.TurnedCW(d.position), true
	case d.sub <= -DetentDivisor:
		d.position--
		d.sub = 0
		return types.TurnedCCW(d.position), true
	}
	return types.InputEvent{}, false
}

// dropCounter is implemented by sources that can lose samples, such as PinSource.
type dropCounter interface {
	Drops() uint32
}

// Run drains src and publishes every detent until ctx is cancelled or the
// source is closed. Samples lost by the source are logged as they are noticed.
func (d *Decoder) Run(ctx context.Context, src PhaseSource, pub Publisher) {
	log := logx.New("rotary")
	samples := src.Samples()
	dc, _ := src.(dropCounter)
	var seen uint32
	checkDrops := func() {
		if dc == nil {
			return
		}
		if n := dc.Drops(); n != seen {
			log.Warn("phase samples dropped", "drops", n, "new", n-seen, "position", d.position)
			seen = n
		}
	}

	log.Info("decoder started", "phase", d.last)
	for {
		select {
		case <-ctx.Done():
			checkDrops()
			log.Info("decoder stopping", "position", d.position)
			return
		case p, ok := <-samples:
			if !ok {
				log.Warn("phase source closed", "position", d.position)
				return
			}
			checkDrops()
			if ev, emit := d.Feed(p); emit {
				pub.Publish(ev)
			}
		}
	}
}
