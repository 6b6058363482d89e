package testutil

import (
	"context"
	"sync"

	"github.com/fekuna/textile-erp-service/internal/notification"
)

// Publisher records every published event.
type Publisher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (p *Publisher) Publish(_ context.Context, e notification.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *Publisher) Events() []notification.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.Event(nil), p.events...)
}

// Categories lists the category of every event in publish order.
func (p *Publisher) Categories() []string {
	var out []string
	for _, e := range p.Events() {
		out = append(out, e.Category)
	}
	return out
}

// Broadcaster records live feed events by name.
type Broadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *Broadcaster) Broadcast(event string, _ any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *Broadcaster) Events() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}

// Sequencer hands out 1, 2, 3... per counter name.
type Sequencer struct {
	mu       sync.Mutex
	counters map[string]int64
}

func (s *Sequencer) Next(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counters == nil {
		s.counters = map[string]int64{}
	}
	s.counters[name]++
	return s.counters[name], nil
}
