package blink

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelcode-go/bus"
	"panelcode-go/types"
)

type fakeLED struct {
	mu     sync.Mutex
	on     bool
	pulses int
}

func (l *fakeLED) Set(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if on && !l.on {
		l.pulses++
	}
	l.on = on
}

func (l *fakeLED) state() (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on, l.pulses
}

func TestPulsesOnPressOnly(t *testing.T) {
	b := bus.New(8, 1)
	sub, err := b.Subscribe()
	require.NoError(t, err)
	led := &fakeLED{}
	s := New(sub, led, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { s.Run(ctx); close(done) }()

	b.Publish(types.TurnedCW(1))
	b.Publish(types.Released(types.Key(0)))
	b.Publish(types.Pressed(types.Key(0)))
	require.Eventually(t, func() bool {
		on, n := led.state()
		return !on && n == 1
	}, time.Second, time.Millisecond)

	b.Publish(types.Pressed(types.Button()))
	require.Eventually(t, func() bool {
		on, n := led.state()
		return !on && n == 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("blink did not stop")
	}
	on, _ := led.state()
	assert.False(t, on)
}
