package blink

import (
	"context"
	"time"

	"panelcode-go/types"
	"panelcode-go/x/logx"
)

// LED is a single digital output.
type LED interface {
	Set(on bool)
}

// Events is the blocking side of a bus subscription.
type Events interface {
	Next(ctx context.Context) (types.InputEvent, error)
}

// Service pulses the status LED once for every press on the panel.
type Service struct {
	ev    Events
	led   LED
	onFor time.Duration
	log   logx.Logger
}

func New(ev Events, led LED, onFor time.Duration) *Service {
	if onFor <= 0 {
		onFor = 50 * time.Millisecond
	}
	return &Service{ev: ev, led: led, onFor: onFor, log: logx.New("blink")}
}

// Run loops until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	s.led.Set(false)
	defer s.led.Set(false)

	s.log.Info("blink service started")
	for {
		ev, err := s.ev.Next(ctx)
		if err != nil {
			s.log.Info("blink service stopping")
			return
		}
		if ev.Kind != types.EventPressed {
			continue
		}
		s.led.Set(true)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.onFor):
		}
		s.led.Set(false)
	}
}
