package ramp

import "panelcode-go/x/mathx"

// Linear is a caller-driven integer ramp: each Step moves the level one
// step closer to the target. The remainder of the division is carried so the
// ramp lands exactly on the target.
type Linear struct {
	cur   int32
	to    int32
	top   int32
	d     int32
	acc   int32
	steps int32
	left  int32
}

// Start ramps from cur to to (both clamped to [0..top]) in steps steps.
// steps==0 snaps to 'to'.
func (r *Linear) Start(cur, to, top uint16, steps uint16) {
	r.top = int32(top)
	r.cur = int32(mathx.Min(cur, top))
	r.to = int32(mathx.Min(to, top))
	r.d = r.to - r.cur
	r.acc = 0
	r.steps = int32(steps)
	r.left = int32(steps)
	if steps == 0 {
		r.cur = r.to
	}
}

// Step advances one step and returns the new level.
func (r *Linear) Step() uint16 {
	if r.left <= 0 {
		return uint16(r.cur)
	}
	r.left--
	if r.left == 0 {
		r.cur = r.to
		return uint16(r.cur)
	}
	r.acc += r.d
	if inc := r.acc / r.steps; inc != 0 {
		r.acc -= inc * r.steps
		r.cur = mathx.Clamp(r.cur+inc, 0, r.top)
	}
	return uint16(r.cur)
}

func (r *Linear) Level() uint16 { return uint16(r.cur) }
func (r *Linear) Active() bool  { return r.left > 0 }
