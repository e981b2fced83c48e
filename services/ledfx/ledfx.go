// Package ledfx lights the key LEDs from input events and fades them out.
// It polls the bus without blocking so the frame rate never depends on input.
package ledfx

import (
	"context"
	"image/color"
	"time"

	"panelcode-go/types"
	"panelcode-go/x/logx"
	"panelcode-go/x/mathx"
	"panelcode-go/x/ramp"
)

const (
	DefaultFrame  = 20 * time.Millisecond
	DefaultFadeMs = 600
	fullLevel     = 0xffff
)

// Strip is an addressable LED chain (ws2812.Device has this method).
type Strip interface {
	WriteColors(buf []color.RGBA) error
}

// Events is the non-blocking side of a bus subscription.
type Events interface {
	TryNext() (types.InputEvent, bool)
}

// Config sets the strip length, frame period and fade shape. Zero fields take defaults.
type Config struct {
	Count      int
	Frame      time.Duration
	FadeMs     uint32
	Brightness uint8
	Palette    []color.RGBA
}

var DefaultPalette = []color.RGBA{
	{R: 0xff, A: 0xff},
	{R: 0xff, G: 0x80, A: 0xff},
	{G: 0xff, A: 0xff},
	{G: 0xc0, B: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xc0, B: 0xff, A: 0xff},
}

// Task owns the strip and renders one frame per tick.
type Task struct {
	ev    Events
	strip Strip
	cfg   Config
	log   logx.Logger

	hue   int
	base  []color.RGBA
	fades []ramp.Linear
	buf   []color.RGBA
	dirty bool

	dropped uint64
}

// dropCounter is implemented by *bus.Subscription.
type dropCounter interface {
	Dropped() uint64
}

func New(ev Events, strip Strip, cfg Config) *Task {
	if cfg.Count <= 0 {
		cfg.Count = types.NumKeys
	}
	if cfg.Frame <= 0 {
		cfg.Frame = DefaultFrame
	}
	if cfg.FadeMs == 0 {
		cfg.FadeMs = DefaultFadeMs
	}
	if cfg.Brightness == 0 {
		cfg.Brightness = 0xff
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette
	}
	return &Task{
		ev:    ev,
		strip: strip,
		cfg:   cfg,
		log:   logx.New("ledfx"),
		base:  make([]color.RGBA, cfg.Count),
		fades: make([]ramp.Linear, cfg.Count),
		buf:   make([]color.RGBA, cfg.Count),
		dirty: true,
	}
}

// Colour returns the current palette entry.
func (t *Task) Colour() color.RGBA { return t.cfg.Palette[t.hue] }

// Pixels returns the last frame computed.
func (t *Task) Pixels() []color.RGBA { return t.buf }

func (t *Task) fadeSteps() uint16 {
	n := time.Duration(t.cfg.FadeMs) * time.Millisecond / t.cfg.Frame
	return uint16(mathx.Clamp(n, 1, 0xffff))
}

func (t *Task) light(i int) {
	t.base[i] = t.Colour()
	t.fades[i].Start(fullLevel, 0, fullLevel, t.fadeSteps())
	t.dirty = true
}

func (t *Task) apply(ev types.InputEvent) {
	switch ev.Kind {
	case types.EventPressed:
		switch ev.Source.Kind {
		case types.SourceKey:
			if i := int(ev.Source.Index); i < t.cfg.Count {
				t.light(i)
			}
		case types.SourceButton:
			for i := range t.base {
				t.light(i)
			}
		case types.SourceEncoder:
		}
	case types.EventTurnedCW:
		t.hue = mathx.Wrap(t.hue+1, len(t.cfg.Palette))
	case types.EventTurnedCCW:
		t.hue = mathx.Wrap(t.hue-1, len(t.cfg.Palette))
	case types.EventReleased:
	}
}

// Frame drains pending events, advances every fade by one step and writes
// the strip when something changed. It never waits for input.
func (t *Task) Frame() error {
	for {
		ev, ok := t.ev.TryNext()
		if !ok {
			break
		}
		t.apply(ev)
	}
	if dc, ok := t.ev.(dropCounter); ok {
		if n := dc.Dropped(); n != t.dropped {
			t.log.Warn("led task lagging, events dropped", "dropped", n, "new", n-t.dropped)
			t.dropped = n
		}
	}

	for i := range t.fades {
		f := &t.fades[i]
		if !f.Active() {
			continue
		}
		level := f.Step()
		c := t.base[i]
		t.buf[i] = color.RGBA{
			R: mathx.Scale8(c.R, level, t.cfg.Brightness),
			G: mathx.Scale8(c.G, level, t.cfg.Brightness),
			B: mathx.Scale8(c.B, level, t.cfg.Brightness),
			A: 0xff,
		}
		t.dirty = true
	}

	if !t.dirty {
		return nil
	}
	if err := t.strip.WriteColors(t.buf); err != nil {
		return err
	}
	t.dirty = false
	return nil
}

// Run renders a frame every cfg.Frame until ctx is cancelled.
func (t *Task) Run(ctx context.Context) {
	tick := time.NewTicker(t.cfg.Frame)
	defer tick.Stop()

	t.log.Info("led task started", "leds", t.cfg.Count)
	for {
		select {
		case <-ctx.Done():
			t.log.Info("led task stopping")
			return
		case <-tick.C:
			if err := t.Frame(); err != nil {
				t.log.Warn("strip write failed", "error", err.Error())
			}
		}
	}
}
