package input

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelcode-go/errcode"
	"panelcode-go/types"
)

// fakePin is pulled high until pressed.
type fakePin struct {
	mu  sync.Mutex
	low bool
}

func (p *fakePin) Get() bool    { p.mu.Lock(); defer p.mu.Unlock(); return !p.low }
func (p *fakePin) press()       { p.mu.Lock(); p.low = true; p.mu.Unlock() }
func (p *fakePin) release()     { p.mu.Lock(); p.low = false; p.mu.Unlock() }
func (p *fakePin) set(low bool) { p.mu.Lock(); p.low = low; p.mu.Unlock() }

type recorder struct {
	mu  sync.Mutex
	evs []types.InputEvent
}

func (r *recorder) Publish(ev types.InputEvent) {
	r.mu.Lock()
	r.evs = append(r.evs, ev)
	r.mu.Unlock()
}
func (r *recorder) events() []types.InputEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.InputEvent(nil), r.evs...)
}

func newPanel(t *testing.T) (*fakePin, []*fakePin, []Pin) {
	t.Helper()
	btn := &fakePin{}
	keys := make([]*fakePin, types.NumKeys)
	pins := make([]Pin, types.NumKeys)
	for i := range keys {
		keys[i] = &fakePin{}
		pins[i] = keys[i]
	}
	return btn, keys, pins
}

func TestNewRejectsBadParams(t *testing.T) {
	rec := &recorder{}
	_, err := New(nil, nil, rec, 0)
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))

	tooMany := make([]Pin, types.NumKeys+1)
	_, err = New(&fakePin{}, tooMany, rec, 0)
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))

	_, err = New(&fakePin{}, nil, nil, 0)
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))
}

func TestPressAndRelease(t *testing.T) {
	btn, keys, pins := newPanel(t)
	rec := &recorder{}
	s, err := New(btn, pins, rec, time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Poll())

	keys[4].press()
	assert.Equal(t, 1, s.Poll())
	assert.True(t, s.Active(types.Key(4)))

	// steady state: idempotent
	assert.Equal(t, 0, s.Poll())
	assert.Equal(t, 0, s.Poll())

	keys[4].release()
	btn.press()
	assert.Equal(t, 2, s.Poll())

	btn.release()
	assert.Equal(t, 1, s.Poll())

	assert.Equal(t, []types.InputEvent{
		types.Pressed(types.Key(4)),
		types.Pressed(types.Button()),
		types.Released(types.Key(4)),
		types.Released(types.Button()),
	}, rec.events())
}

func TestOneEdgePerObservedChange(t *testing.T) {
	btn, _, _ := newPanel(t)
	rec := &recorder{}
	s, err := New(btn, nil, rec, time.Millisecond)
	require.NoError(t, err)

	levels := []bool{false, true, true, false, true, false, false, true, true, true}
	prev := false
	edges := 0
	for _, low := range levels {
		btn.set(low)
		s.Poll()
		if low != prev {
			edges++
		}
		prev = low
	}

	evs := rec.events()
	require.Len(t, evs, edges)
	for i, ev := range evs {
		if i%2 == 0 {
			assert.Equal(t, types.EventPressed, ev.Kind)
		} else {
			assert.Equal(t, types.EventReleased, ev.Kind)
		}
	}
}

func TestChatterBetweenPollsIsInvisible(t *testing.T) {
	btn, _, _ := newPanel(t)
	rec := &recorder{}
	s, err := New(btn, nil, rec, time.Millisecond)
	require.NoError(t, err)

	// bounce settles low before the tick
	for i := 0; i < 7; i++ {
		btn.set(i%2 == 0)
	}
	s.Poll()
	assert.Equal(t, []types.InputEvent{types.Pressed(types.Button())}, rec.events())
}

func TestNilKeySlotsSkipped(t *testing.T) {
	k2 := &fakePin{}
	rec := &recorder{}
	s, err := New(&fakePin{}, []Pin{nil, nil, k2}, rec, time.Millisecond)
	require.NoError(t, err)

	k2.press()
	s.Poll()
	assert.Equal(t, []types.InputEvent{types.Pressed(types.Key(2))}, rec.events())
}

func TestRunPollsUntilCancelled(t *testing.T) {
	btn, _, _ := newPanel(t)
	rec := &recorder{}
	s, err := New(btn, nil, rec, time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { s.Run(ctx); close(done) }()

	btn.press()
	require.Eventually(t, func() bool { return len(rec.events()) == 1 }, time.Second, time.Millisecond)
	btn.release()
	require.Eventually(t, func() bool { return len(rec.events()) == 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
