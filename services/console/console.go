// Package console mirrors every input event as a text line on a serial port.
package console

import (
	"context"
	"io"

	"panelcode-go/types"
	"panelcode-go/x/logx"
)

// Events is the blocking side of a bus subscription.
type Events interface {
	Next(ctx context.Context) (types.InputEvent, error)
}

// lagReporter is implemented by *bus.Subscription.
type lagReporter interface {
	Dropped() uint64
	Pending() int
}

// Service writes one line per event to a serial port.
type Service struct {
	ev  Events
	w   io.Writer
	log logx.Logger

	failures int
	dropped  uint64
}

func New(ev Events, w io.Writer) *Service {
	return &Service{ev: ev, w: w, log: logx.New("console")}
}

// Failures counts lines that could not be written.
func (s *Service) Failures() int { return s.failures }

// Run writes one line per event until ctx is cancelled. Write errors are
// logged and the line is lost.
func (s *Service) Run(ctx context.Context) {
	line := make([]byte, 0, 32)
	s.log.Info("console started")
	for {
		ev, err := s.ev.Next(ctx)
		if err != nil {
			s.log.Info("console stopping", "failures", s.failures)
			return
		}
		s.checkLag()
		line = append(line[:0], ev.String()...)
		line = append(line, '\r', '\n')
		if _, err := s.w.Write(line); err != nil {
			s.failures++
			if s.failures == 1 || s.failures%100 == 0 {
				s.log.Warn("console write failed", "failures", s.failures, "error", err.Error())
			}
		}
	}
}

func (s *Service) checkLag() {
	lr, ok := s.ev.(lagReporter)
	if !ok {
		return
	}
	if n := lr.Dropped(); n != s.dropped {
		s.log.Warn("console lagging, events dropped", "dropped", n, "new", n-s.dropped, "pending", lr.Pending())
		s.dropped = n
	}
}
