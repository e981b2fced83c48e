//go:build rp2040 || rp2350

// selftest exercises the event bus and the quadrature decoder on the target
// and reports over the USB console.
package main

import (
	"context"
	"time"

	"machine"

	"panelcode-go/bus"
	"panelcode-go/errcode"
	"panelcode-go/services/rotary"
	"panelcode-go/types"
)

func logln(s string) { println(s) }

// --- helpers -------------------------------------------------------------------

func expectEvent(sub *bus.Subscription, want types.InputEvent, timeout time.Duration) (ok bool, why string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	got, err := sub.Next(ctx)
	if err != nil {
		return false, "timeout"
	}
	if got != want {
		return false, "unexpected event " + got.String()
	}
	return true, ""
}

func expectNoEvent(sub *bus.Subscription) (ok bool, why string) {
	if ev, got := sub.TryNext(); got {
		return false, "unexpected event " + ev.String()
	}
	return true, ""
}

// --- individual tests (return bool pass/fail) --------------------------------

func TestBasicPubSub() bool {
	b := bus.New(4, 1)
	sub, err := b.Subscribe()
	if err != nil {
		logln("TestBasicPubSub: " + err.Error())
		return false
	}
	b.Publish(types.Pressed(types.Button()))
	ok, why := expectEvent(sub, types.Pressed(types.Button()), 100*time.Millisecond)
	if !ok {
		logln("TestBasicPubSub: " + why)
	}
	return ok
}

func TestFanOut() bool {
	b := bus.New(8, 2)
	s1, _ := b.Subscribe()
	s2, _ := b.Subscribe()
	if s1 == nil || s2 == nil {
		logln("TestFanOut: subscribe failed")
		return false
	}
	evs := []types.InputEvent{types.Pressed(types.Key(1)), types.TurnedCW(1), types.Released(types.Key(1))}
	for _, ev := range evs {
		b.Publish(ev)
	}
	for _, s := range []*bus.Subscription{s1, s2} {
		for _, ev := range evs {
			if ok, why := expectEvent(s, ev, 100*time.Millisecond); !ok {
				logln("TestFanOut: " + why)
				return false
			}
		}
	}
	return true
}

func TestDropOldest() bool {
	b := bus.New(4, 1)
	sub, _ := b.Subscribe()
	for i := int32(1); i <= 6; i++ {
		b.Publish(types.TurnedCW(i))
	}
	for i := int32(3); i <= 6; i++ {
		if ok, why := expectEvent(sub, types.TurnedCW(i), 50*time.Millisecond); !ok {
			logln("TestDropOldest: " + why)
			return false
		}
	}
	if ok, why := expectNoEvent(sub); !ok {
		logln("TestDropOldest: " + why)
		return false
	}
	if sub.Dropped() != 2 {
		logln("TestDropOldest: wrong drop count")
		return false
	}
	return true
}

func TestSubscriberLimit() bool {
	b := bus.New(4, 1)
	if _, err := b.Subscribe(); err != nil {
		logln("TestSubscriberLimit: first subscribe failed")
		return false
	}
	_, err := b.Subscribe()
	if errcode.Of(err) != errcode.TooManySubscribers {
		logln("TestSubscriberLimit: expected too_many_subscribers")
		return false
	}
	return true
}

func TestCrossTaskWake() bool {
	b := bus.New(4, 1)
	sub, _ := b.Subscribe()
	done := make(chan bool, 1)
	go func() {
		ok, _ := expectEvent(sub, types.Pressed(types.Key(7)), 500*time.Millisecond)
		done <- ok
	}()
	time.Sleep(20 * time.Millisecond)
	b.Publish(types.Pressed(types.Key(7)))
	if !<-done {
		logln("TestCrossTaskWake: consumer did not wake")
		return false
	}
	return true
}

func TestDecoderDetents() bool {
	d := rotary.NewDecoder(0b00)
	cw := []uint8{0b10, 0b11, 0b01, 0b00}
	var last types.InputEvent
	n := 0
	for _, p := range cw {
		if ev, ok := d.Feed(p); ok {
			last, n = ev, n+1
		}
	}
	if n != 1 || last != types.TurnedCW(1) {
		logln("TestDecoderDetents: cw detent not reported")
		return false
	}
	for i := len(cw) - 2; i >= 0; i-- {
		d.Feed(cw[i])
	}
	if ev, ok := d.Feed(0b00); !ok || ev != types.TurnedCCW(0) {
		logln("TestDecoderDetents: ccw detent not reported")
		return false
	}
	return true
}

// --- main: run all tests, report, and blink LED on failure --------------------

type testFn struct {
	name string
	fn   func() bool
}

func main() {
	// Give the USB CDC time to enumerate so logs show up reliably.
	time.Sleep(250 * time.Millisecond)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()

	tests := []testFn{
		{"TestBasicPubSub", TestBasicPubSub},
		{"TestFanOut", TestFanOut},
		{"TestDropOldest", TestDropOldest},
		{"TestSubscriberLimit", TestSubscriberLimit},
		{"TestCrossTaskWake", TestCrossTaskWake},
		{"TestDecoderDetents", TestDecoderDetents},
	}

	passed, failed := 0, 0
	logln("== bus self-test starting ==")
	for _, tc := range tests {
		if tc.fn() {
			println("[PASS]", tc.name)
			passed++
		} else {
			println("[FAIL]", tc.name)
			failed++
		}
		time.Sleep(10 * time.Millisecond)
	}
	println("== done:", passed, "passed,", failed, "failed ==")

	// LED: solid ON if all passed, otherwise blink forever.
	if failed == 0 {
		for {
			led.High()
			time.Sleep(2 * time.Second)
		}
	}
	for {
		led.High()
		time.Sleep(250 * time.Millisecond)
		led.Low()
		time.Sleep(250 * time.Millisecond)
	}
}
