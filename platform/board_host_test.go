//go:build !(rp2040 || rp2350)

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelcode-go/services/display"
	"panelcode-go/services/rotary"
	"panelcode-go/types"
)

func newTestHost(t *testing.T) *Host {
	t.Helper()
	h, err := NewHost(MacroPad, display.NewFramebuffer(MacroPad.Width, MacroPad.Height), nil)
	require.NoError(t, err)
	return h
}

func drainSamples(src *rotary.PinSource) []uint8 {
	var out []uint8
	for {
		select {
		case p := <-src.Samples():
			out = append(out, p)
		default:
			return out
		}
	}
}

func TestHostRestsHigh(t *testing.T) {
	h := newTestHost(t)
	assert.Equal(t, uint8(0b11), h.Board.EncoderPhase)
	assert.True(t, h.Board.Button.Get())
	require.Len(t, h.Board.Keys, types.NumKeys)
	for _, k := range h.Board.Keys {
		assert.True(t, k.Get())
	}
	assert.False(t, h.StatusLED())
}

func TestHostPressRelease(t *testing.T) {
	h := newTestHost(t)

	h.Press(types.Key(11))
	assert.False(t, h.Board.Keys[11].Get())
	assert.True(t, h.Board.Keys[10].Get())
	h.Release(types.Key(11))
	assert.True(t, h.Board.Keys[11].Get())

	h.Press(types.Button())
	assert.False(t, h.Board.Button.Get())
	h.Release(types.Button())
	assert.True(t, h.Board.Button.Get())

	// out of range and encoder sources are ignored
	h.Press(types.Key(200))
	h.Press(types.Encoder())
}

func TestHostTurnDecodes(t *testing.T) {
	h := newTestHost(t)
	d := rotary.NewDecoder(h.Board.EncoderPhase)

	feed := func() []types.InputEvent {
		var evs []types.InputEvent
		for _, p := range drainSamples(h.Source) {
			if ev, ok := d.Feed(p); ok {
				evs = append(evs, ev)
			}
		}
		return evs
	}

	h.Turn(2)
	assert.Equal(t, []types.InputEvent{types.TurnedCW(1), types.TurnedCW(2)}, feed())
	assert.Equal(t, uint8(0b11), h.Source.Phase(), "whole detents return to rest")

	h.Turn(-3)
	assert.Equal(t, []types.InputEvent{types.TurnedCCW(1), types.TurnedCCW(0), types.TurnedCCW(-1)}, feed())
	assert.Equal(t, uint32(0), h.Source.Drops())
}

func TestNewBoardIsInert(t *testing.T) {
	b, err := NewBoard(types.PanelConfig{Device: "sim"})
	require.NoError(t, err)
	assert.NotNil(t, b.Surface)
	assert.NotNil(t, b.Encoder)
	assert.Nil(t, b.Console)
}
