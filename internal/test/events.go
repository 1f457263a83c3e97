package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// EventRecorder collects emitted events.
type EventRecorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *EventRecorder) Emit(event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of everything emitted so far.
func (r *EventRecorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.events...)
}

// PublisherStub records published events and optionally fails.
type PublisherStub struct {
	PublishFn func(context.Context, model.Event) error
	Published chan model.Event
}

func (p *PublisherStub) Publish(ctx context.Context, event model.Event) error {
	if p.PublishFn != nil {
		if err := p.PublishFn(ctx, event); err != nil {
			return err
		}
	}
	if p.Published != nil {
		select {
		case p.Published <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
