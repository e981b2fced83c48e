package rotary

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelcode-go/x/logx"
)

// fakeIRQPin implements IRQPin with minimal behaviour for tests.
type fakeIRQPin struct {
	mu      sync.Mutex
	level   bool
	handler func()
	failSet bool
}

func (p *fakeIRQPin) Get() bool { p.mu.Lock(); defer p.mu.Unlock(); return p.level }
func (p *fakeIRQPin) SetIRQ(h func()) error {
	if p.failSet {
		return errors.New("no irq")
	}
	p.mu.Lock()
	p.handler = h
	p.mu.Unlock()
	return nil
}
func (p *fakeIRQPin) ClearIRQ() error { p.mu.Lock(); p.handler = nil; p.mu.Unlock(); return nil }
func (p *fakeIRQPin) fire(level bool) {
	p.mu.Lock()
	p.level = level
	h := p.handler
	p.mu.Unlock()
	if h != nil {
		h()
	}
}

func TestPinSourceSamplesBothLines(t *testing.T) {
	a, b := &fakeIRQPin{}, &fakeIRQPin{}
	s, err := NewPinSource(a, b, 8)
	require.NoError(t, err)

	a.fire(true)
	b.fire(true)
	a.fire(false)
	b.fire(false)

	var got []uint8
	for i := 0; i < 4; i++ {
		got = append(got, <-s.Samples())
	}
	assert.Equal(t, []uint8{0b10, 0b11, 0b01, 0b00}, got)

	d := NewDecoder(0b00)
	evs := feedAll(d, got)
	assert.Len(t, evs, 1)
}

func TestPinSourceDropsWhenFull(t *testing.T) {
	a, b := &fakeIRQPin{}, &fakeIRQPin{}
	s, err := NewPinSource(a, b, 2)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		a.fire(i%2 == 0)
	}
	assert.Equal(t, uint32(3), s.Drops())
	assert.Len(t, s.Samples(), 2)
}

func TestPinSourceClose(t *testing.T) {
	a, b := &fakeIRQPin{}, &fakeIRQPin{}
	s, err := NewPinSource(a, b, 2)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	a.fire(true)
	assert.Len(t, s.Samples(), 0)
}

func TestPinSourceArmFailure(t *testing.T) {
	a, b := &fakeIRQPin{}, &fakeIRQPin{failSet: true}
	_, err := NewPinSource(a, b, 2)
	require.Error(t, err)
	assert.Nil(t, a.handler)

	_, err = NewPinSource(nil, b, 2)
	require.Error(t, err)
}

func TestRunLogsDroppedSamples(t *testing.T) {
	var logs bytes.Buffer
	logx.SetOutput(&logs, false)
	defer logx.SetOutput(os.Stderr, false)

	a, b := &fakeIRQPin{}, &fakeIRQPin{}
	s, err := NewPinSource(a, b, 4)
	require.NoError(t, err)

	// two CW detents from rest, but only the first one fits the queue
	for i := 0; i < 2; i++ {
		a.fire(true)
		b.fire(true)
		a.fire(false)
		b.fire(false)
	}
	require.Equal(t, uint32(4), s.Drops())

	rec := &recorder{}
	d := NewDecoder(0b00)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	d.Run(ctx, s, rec)

	assert.Equal(t, int32(1), d.Position(), "lost samples cost a detent")
	out := logs.String()
	assert.Contains(t, out, "phase samples dropped")
	assert.Contains(t, out, `"drops":4`)
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("phase samples dropped")))
}
