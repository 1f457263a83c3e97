package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const publishTimeout = 5 * time.Second

// Publisher delivers an event to its destination.
type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
}

// EventDispatcher hands events to a pool of publishing workers. Emit never
// blocks: when the buffer is full the event is dropped.
type EventDispatcher struct {
	publisher Publisher
	workers   int
	logger    *slog.Logger

	jobs    chan model.Event
	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewEventDispatcher constructs dispatcher with the given pool and buffer sizes.
func NewEventDispatcher(publisher Publisher, workers, buffer int, logger *slog.Logger) *EventDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &EventDispatcher{
		publisher: publisher,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan model.Event, buffer),
	}
}

// Start launches publishing workers. Repeated calls are no-ops.
func (d *EventDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(context.WithoutCancel(ctx))
	}
}

// Stop refuses new events and waits until queued ones are published.
func (d *EventDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

// Emit enqueues event for publishing.
func (d *EventDispatcher) Emit(event model.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("event dropped after shutdown", slog.String("type", string(event.Type)))
		return
	}

	select {
	case d.jobs <- event:
	default:
		d.logger.Warn("event queue full, dropping event",
			slog.String("type", string(event.Type)),
			slog.Int64("order_id", event.OrderID),
		)
	}
}

func (d *EventDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for event := range d.jobs {
		d.publish(ctx, event)
	}
}

func (d *EventDispatcher) publish(ctx context.Context, event model.Event) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Error("publish event failed",
			slog.String("type", string(event.Type)),
			slog.Int64("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
	}
}
