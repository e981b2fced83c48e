package ramp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearDown(t *testing.T) {
	var r Linear
	r.Start(100, 0, 100, 4)
	assert.True(t, r.Active())

	var got []uint16
	for r.Active() {
		got = append(got, r.Step())
	}
	assert.Equal(t, []uint16{75, 50, 25, 0}, got)
	assert.Equal(t, uint16(0), r.Step())
}

func TestLinearUnevenLandsOnTarget(t *testing.T) {
	var r Linear
	r.Start(0, 10, 0xffff, 3)
	prev := r.Level()
	for r.Active() {
		v := r.Step()
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
	assert.Equal(t, uint16(10), r.Level())
}

func TestLinearSnapAndClamp(t *testing.T) {
	var r Linear
	r.Start(5, 500, 200, 0)
	assert.False(t, r.Active())
	assert.Equal(t, uint16(200), r.Level())
}
