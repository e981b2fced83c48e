package platform

import "sync"

// FakePin implements the panel's pin interfaces for host builds and tests.
// Change callbacks run synchronously from Set, like an ISR would.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	irqFunc func()
}

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

// Set drives the line and fires the change callback when the level changes.
func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	changed := p.level != level
	p.level = level
	irq := p.irqFunc
	p.mu.Unlock()
	if changed && irq != nil {
		irq()
	}
}

// Press pulls an active-low input to ground; Release lets the pull-up win.
func (p *FakePin) Press()   { p.Set(false) }
func (p *FakePin) Release() { p.Set(true) }

func (p *FakePin) SetIRQ(handler func()) error {
	p.mu.Lock()
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func NewHostPinFactory() *HostPinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin)}
}

// ByNumber returns the pin for n, creating it pulled high.
func (f *HostPinFactory) ByNumber(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n, level: true}
		f.pins[n] = p
	}
	return p
}
