package main

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"panelcode-go/types"
)

// keyRunes maps the number row to the twelve keys.
var keyRunes = map[rune]int{
	'1': 0, '2': 1, '3': 2, '4': 3, '5': 4, '6': 5,
	'7': 6, '8': 7, '9': 8, '0': 9, '-': 10, '=': 11,
}

// Panel is the part of platform.Host the keyboard drives.
type Panel interface {
	Press(types.InputSource)
	Release(types.InputSource)
	Turn(detents int)
}

// Keyboard turns terminal key events into pin activity. Terminals report no
// key-up, so every press is released after hold unless it repeats first.
type Keyboard struct {
	panel Panel
	hold  time.Duration

	mu     sync.Mutex
	timers map[types.InputSource]*time.Timer
}

func NewKeyboard(p Panel, hold time.Duration) *Keyboard {
	return &Keyboard{panel: p, hold: hold, timers: make(map[types.InputSource]*time.Timer)}
}

// Handle applies ev and reports whether it asks to quit.
func (k *Keyboard) Handle(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		k.tap(types.Button())
	case tcell.KeyRight:
		k.panel.Turn(1)
	case tcell.KeyLeft:
		k.panel.Turn(-1)
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == 'q':
			return true
		case r == ' ':
			k.tap(types.Button())
		default:
			if i, ok := keyRunes[r]; ok {
				k.tap(types.Key(i))
			}
		}
	}
	return false
}

func (k *Keyboard) tap(src types.InputSource) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if t, held := k.timers[src]; held {
		t.Reset(k.hold)
		return
	}
	k.panel.Press(src)
	k.timers[src] = time.AfterFunc(k.hold, func() { k.release(src) })
}

func (k *Keyboard) release(src types.InputSource) {
	k.mu.Lock()
	delete(k.timers, src)
	k.mu.Unlock()
	k.panel.Release(src)
}

// ReleaseAll lets go of every held input.
func (k *Keyboard) ReleaseAll() {
	k.mu.Lock()
	held := k.timers
	k.timers = make(map[types.InputSource]*time.Timer)
	k.mu.Unlock()
	for src, t := range held {
		t.Stop()
		k.panel.Release(src)
	}
}
