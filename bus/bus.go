// bus.go
package bus

import (
	"context"
	"sync"

	"panelcode-go/errcode"
	"panelcode-go/types"
)

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

// Bus is a bounded broadcast channel of input events.
//
// All subscribers read from one shared ring. The write sequence only grows;
// each subscription keeps its own read sequence, so a slow reader never holds
// back a publisher. When a reader falls more than capacity events behind, its
// cursor is moved forward and the oldest unread events are lost for it.
type Bus struct {
	mu   sync.Mutex
	ring []types.InputEvent
	wr   uint64 // next write sequence (monotonic)
	subs []*Subscription
	n    int // attached subscriptions
}

// New creates a bus holding capacity events for up to maxSubs subscribers.
func New(capacity, maxSubs int) *Bus {
	if capacity <= 0 {
		capacity = 8 // safe default
	}
	if maxSubs <= 0 {
		maxSubs = 4
	}
	return &Bus{
		ring: make([]types.InputEvent, capacity),
		subs: make([]*Subscription, maxSubs),
	}
}

// Capacity is the number of events a subscriber may fall behind before losing the oldest.
func (b *Bus) Capacity() int { return len(b.ring) }

// MaxSubscribers is the number of subscription slots.
func (b *Bus) MaxSubscribers() int { return len(b.subs) }

// Subscribers reports the number of attached subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

// Subscribe attaches a new read cursor positioned after every event published
// so far. It fails with errcode.TooManySubscribers when all slots are taken.
func (b *Bus) Subscribe() (*Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s != nil {
			continue
		}
		sub := &Subscription{
			bus:   b,
			slot:  i,
			rd:    b.wr,
			ready: make(chan struct{}, 1),
		}
		b.subs[i] = sub
		b.n++
		return sub, nil
	}
	return nil, &errcode.E{C: errcode.TooManySubscribers, Op: "bus.subscribe"}
}

// Publish appends ev and wakes every subscriber. It never blocks.
func (b *Bus) Publish(ev types.InputEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := uint64(len(b.ring))
	b.ring[b.wr%capacity] = ev
	b.wr++

	for _, sub := range b.subs {
		if sub == nil {
			continue
		}
		// drop oldest for readers that lapped the ring
		if lag := b.wr - sub.rd; lag > capacity {
			sub.dropped += lag - capacity
			sub.rd = b.wr - capacity
		}
		select {
		case sub.ready <- struct{}{}:
		default:
		}
	}
}

func (b *Bus) detach(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.slot >= 0 && b.subs[sub.slot] == sub {
		b.subs[sub.slot] = nil
		b.n--
	}
	sub.slot = -1
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

// Subscription is an independent read cursor on a Bus.
// A Subscription is owned by one task; it is not safe to read it from two.
type Subscription struct {
	bus     *Bus
	slot    int
	rd      uint64 // guarded by bus.mu
	dropped uint64 // guarded by bus.mu
	ready   chan struct{}
}

// TryNext returns the next pending event without waiting.
func (s *Subscription) TryNext() (types.InputEvent, bool) {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	if s.rd == b.wr {
		return types.InputEvent{}, false
	}
	ev := b.ring[s.rd%uint64(len(b.ring))]
	s.rd++
	return ev, true
}

// Next waits for the next event or for ctx to be done.
func (s *Subscription) Next(ctx context.Context) (types.InputEvent, error) {
	for {
		if ev, ok := s.TryNext(); ok {
			return ev, nil
		}
		select {
		case <-ctx.Done():
			return types.InputEvent{}, ctx.Err()
		case <-s.ready:
		}
	}
}

// Pending reports the number of events waiting for this subscriber.
func (s *Subscription) Pending() int {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	return int(b.wr - s.rd)
}

// Dropped reports how many events were skipped because this subscriber lagged.
func (s *Subscription) Dropped() uint64 {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	return s.dropped
}

// Unsubscribe releases the subscriber slot. The subscription must not be used afterwards.
func (s *Subscription) Unsubscribe() { s.bus.detach(s) }
