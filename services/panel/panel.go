// Package panel wires the input producers, the event bus and every consumer
// task together and runs the menu loop.
package panel

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"panelcode-go/bus"
	"panelcode-go/errcode"
	"panelcode-go/services/blink"
	"panelcode-go/services/console"
	"panelcode-go/services/display"
	"panelcode-go/services/input"
	"panelcode-go/services/ledfx"
	"panelcode-go/services/menu"
	"panelcode-go/services/rotary"
	"panelcode-go/types"
	"panelcode-go/x/logx"
)

// Board is the set of resources a platform provides. Strip, StatusLED and
// Console are optional.
type Board struct {
	Button  input.Pin
	Keys    []input.Pin
	Encoder rotary.PhaseSource
	// EncoderPhase is the resting phase read at bring-up.
	EncoderPhase uint8
	Surface      display.Surface

	Strip     ledfx.Strip
	StatusLED blink.LED
	Console   io.Writer
}

// SelectFunc receives every committed menu choice. Returning an error stops the panel.
type SelectFunc func(ctx context.Context, index int, label string) error

var Style = display.Style{Fg: display.White, Bg: display.Black}

// Panel is a fully wired set of tasks, ready to run.
type Panel struct {
	cfg  types.PanelConfig
	bus  *bus.Bus
	log  logx.Logger
	sel  SelectFunc
	run  []func(context.Context)
	nav  *menu.Navigator
	subs []*bus.Subscription
}

// New creates the bus and attaches every subscriber. Too many subscribers
// or a missing resource is reported here, before any task starts.
func New(cfg types.PanelConfig, b Board, onSelect SelectFunc) (*Panel, error) {
	if b.Encoder == nil || b.Surface == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "panel.new", Msg: "encoder and surface required"}
	}
	p := &Panel{
		cfg: cfg,
		bus: bus.New(cfg.BusCapacity, cfg.MaxSubscribers),
		log: logx.New("panel"),
		sel: onSelect,
	}
	if p.sel == nil {
		p.sel = p.logSelection
	}

	sampler, err := input.New(b.Button, b.Keys, p.bus, cfg.PollPeriod())
	if err != nil {
		return nil, err
	}
	dec := rotary.NewDecoder(b.EncoderPhase)
	p.run = append(p.run,
		sampler.Run,
		func(ctx context.Context) { dec.Run(ctx, b.Encoder, p.bus) },
	)

	menuSub, err := p.subscribe()
	if err != nil {
		return nil, err
	}
	if p.nav, err = menu.NewNavigator(cfg.Menu, b.Surface, menuSub, Style); err != nil {
		p.release()
		return nil, err
	}

	if b.Strip != nil {
		sub, err := p.subscribe()
		if err != nil {
			return nil, err
		}
		fx := ledfx.New(sub, b.Strip, ledfx.Config{FadeMs: cfg.LED.FadeMs, Brightness: cfg.LED.Brightness})
		p.run = append(p.run, fx.Run)
	}
	if b.StatusLED != nil {
		sub, err := p.subscribe()
		if err != nil {
			return nil, err
		}
		p.run = append(p.run, blink.New(sub, b.StatusLED, cfg.BlinkDuration()).Run)
	}
	if b.Console != nil && cfg.Console {
		sub, err := p.subscribe()
		if err != nil {
			return nil, err
		}
		p.run = append(p.run, console.New(sub, b.Console).Run)
	}
	return p, nil
}

func (p *Panel) subscribe() (*bus.Subscription, error) {
	sub, err := p.bus.Subscribe()
	if err != nil {
		p.release()
		return nil, &errcode.E{C: errcode.TooManySubscribers, Op: "panel.wire",
			Msg: "raise max_subscribers", Err: err}
	}
	p.subs = append(p.subs, sub)
	return sub, nil
}

func (p *Panel) release() {
	for _, s := range p.subs {
		s.Unsubscribe()
	}
	p.subs = nil
}

// Bus exposes the event bus so that extra consumers can attach before Run.
func (p *Panel) Bus() *bus.Bus { return p.bus }

// Run starts every task and loops the menu until ctx is cancelled, the
// display fails, or the selection handler returns an error.
func (p *Panel) Run(ctx context.Context) error {
	defer p.release()

	g, ctx := errgroup.WithContext(ctx)
	for _, task := range p.run {
		task := task
		g.Go(func() error {
			task(ctx)
			return nil
		})
	}
	g.Go(func() error {
		p.log.Info("panel running", "items", len(p.cfg.Menu),
			"subscribers", p.bus.Subscribers(), "max_subscribers", p.bus.MaxSubscribers(),
			"bus_capacity", p.bus.Capacity())
		for {
			idx, err := p.nav.Choose(ctx)
			if err != nil {
				return err
			}
			if err := p.sel(ctx, idx, p.cfg.Menu[idx]); err != nil {
				return err
			}
		}
	})
	return g.Wait()
}

func (p *Panel) logSelection(_ context.Context, index int, label string) error {
	p.log.Info("menu selection", "index", index, "label", label)
	return nil
}

// Run wires and runs a panel in one call.
func Run(ctx context.Context, cfg types.PanelConfig, b Board, onSelect SelectFunc) error {
	p, err := New(cfg, b, onSelect)
	if err != nil {
		return err
	}
	return p.Run(ctx)
}
