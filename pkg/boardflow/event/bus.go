package event

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// Handler consumes one event. Handlers run on the subscription's own
// goroutine, never on the scheduler's.
type Handler func(Event)

// Subscription is an active registration on a Bus.
type Subscription interface {
	// Unsubscribe stops delivery and releases the subscription.
	Unsubscribe()
}

// BusConfig configures bus behavior.
type BusConfig struct {
	// BufferSize is the per-subscription channel buffer.
	// Default: 256
	BufferSize int

	// OnDrop is called when a subscriber's buffer is full and an event
	// is discarded. Optional.
	OnDrop func(evt Event, subscriberID string)
}

// Bus is an in-memory, non-blocking pub/sub bus for run events.
//
// Publish never blocks: a subscriber that cannot keep up loses events
// (reported through OnDrop) rather than stalling the scheduler.
type Bus struct {
	config BusConfig

	mu     sync.RWMutex
	subs   map[string]*subscription
	byType map[Type]map[string]*subscription
	all    map[string]*subscription

	nextID atomic.Int64
	closed atomic.Bool
}

type subscription struct {
	id      string
	bus     *Bus
	ch      chan Event
	done    chan struct{}
	once    sync.Once
	handler Handler
}

// NewBus creates an event bus.
func NewBus(config BusConfig) *Bus {
	if config.BufferSize <= 0 {
		config.BufferSize = 256
	}
	return &Bus{
		config: config,
		subs:   make(map[string]*subscription),
		byType: make(map[Type]map[string]*subscription),
		all:    make(map[string]*subscription),
	}
}

// Subscribe registers a handler for the given event types.
// An empty type list subscribes to all events.
func (b *Bus) Subscribe(types []Type, handler Handler) Subscription {
	sub := &subscription{
		id:      "sub-" + strconv.FormatInt(b.nextID.Add(1), 10),
		bus:     b,
		ch:      make(chan Event, b.config.BufferSize),
		done:    make(chan struct{}),
		handler: handler,
	}

	b.mu.Lock()
	b.subs[sub.id] = sub
	if len(types) == 0 {
		b.all[sub.id] = sub
	} else {
		for _, t := range types {
			if b.byType[t] == nil {
				b.byType[t] = make(map[string]*subscription)
			}
			b.byType[t][sub.id] = sub
		}
	}
	b.mu.Unlock()

	go sub.run()
	return sub
}

// Publish delivers an event to matching subscribers without blocking.
func (b *Bus) Publish(evt Event) {
	if b.closed.Load() {
		return
	}

	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.all)+len(b.byType[evt.Type]))
	for _, sub := range b.all {
		targets = append(targets, sub)
	}
	for _, sub := range b.byType[evt.Type] {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		select {
		case sub.ch <- evt:
		default:
			if b.config.OnDrop != nil {
				b.config.OnDrop(evt, sub.id)
			}
		}
	}
}

// Close shuts down the bus and all subscriptions.
func (b *Bus) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	b.mu.Lock()
	subs := make([]*subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

func (s *subscription) run() {
	for {
		select {
		case evt := <-s.ch:
			s.handler(evt)
		case <-s.done:
			// Drain what was already buffered before stopping.
			for {
				select {
				case evt := <-s.ch:
					s.handler(evt)
				default:
					return
				}
			}
		}
	}
}

// Unsubscribe implements Subscription.
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		b := s.bus
		b.mu.Lock()
		delete(b.subs, s.id)
		delete(b.all, s.id)
		for _, m := range b.byType {
			delete(m, s.id)
		}
		b.mu.Unlock()
		close(s.done)
	})
}
