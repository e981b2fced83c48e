// Package input polls the panel's push button and key matrix and turns level
// changes into Pressed/Released events.
package input

import (
	"context"
	"time"

	"panelcode-go/errcode"
	"panelcode-go/types"
	"panelcode-go/x/logx"
)

// DefaultPollPeriod is coarse enough to hide contact chatter; only one
// transition per source can be observed per tick.
const DefaultPollPeriod = 100 * time.Millisecond

// Pin is one logical input line. Lines are active-low with pull-ups, so a
// pressed switch reads false.
type Pin interface {
	Get() bool
}

// Publisher receives the sampler's events. Publish must not block.
type Publisher interface {
	Publish(types.InputEvent)
}

type line struct {
	pin    Pin
	src    types.InputSource
	active bool // last observed logical state
}

// Sampler owns the debounce state of the button and every key.
type Sampler struct {
	lines  []line
	pub    Publisher
	period time.Duration
	log    logx.Logger
}

// New builds a sampler for button and up to types.NumKeys keys. Key i is
// reported as types.Key(i); a nil key pin leaves that slot unused.
func New(button Pin, keys []Pin, pub Publisher, period time.Duration) (*Sampler, error) {
	if button == nil || pub == nil || len(keys) > types.NumKeys {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "input.new"}
	}
	if period <= 0 {
		period = DefaultPollPeriod
	}
	lines := make([]line, 0, 1+len(keys))
	lines = append(lines, line{pin: button, src: types.Button()})
	for i, k := range keys {
		if k == nil {
			continue
		}
		lines = append(lines, line{pin: k, src: types.Key(i)})
	}
	return &Sampler{
		lines:  lines,
		pub:    pub,
		period: period,
		log:    logx.New("input"),
	}, nil
}

// Poll samples every line once and publishes one event per observed edge.
// It returns the number of events published.
func (s *Sampler) Poll() int {
	n := 0
	for i := range s.lines {
		l := &s.lines[i]
		low := !l.pin.Get()
		switch {
		case !l.active && low:
			l.active = true
			s.pub.Publish(types.Pressed(l.src))
			n++
		case l.active && !low:
			l.active = false
			s.pub.Publish(types.Released(l.src))
			n++
		}
	}
	return n
}

// Active reports the stored logical state of src.
func (s *Sampler) Active(src types.InputSource) bool {
	for _, l := range s.lines {
		if l.src == src {
			return l.active
		}
	}
	return false
}

// Run polls at the configured period until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	tick := time.NewTicker(s.period)
	defer tick.Stop()

	s.log.Info("sampler started", "lines", len(s.lines), "period_ms", int(s.period/time.Millisecond))
	for {
		s.Poll()
		select {
		case <-ctx.Done():
			s.log.Info("sampler stopping")
			return
		case <-tick.C:
		}
	}
}
