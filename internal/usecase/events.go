package usecase

import "github.com/polkiloo/storefront/internal/domain/model"

// EventEmitter accepts events after the state change they describe has been
// committed. Implementations must not block the caller.
type EventEmitter interface {
	Emit(event model.Event)
}

// DiscardEvents drops every event.
type DiscardEvents struct{}

func (DiscardEvents) Emit(model.Event) {}
