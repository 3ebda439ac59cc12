package events

import (
	"context"
	"sync"

	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

// Handler processes a single domain event.
type Handler func(ctx context.Context, event DomainEvent)

// Dispatcher fans events out to subscribed handlers. Dispatch is synchronous
// and best-effort: a handler cannot fail the operation that emitted the event.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   logger.Interface
}

func NewDispatcher(log logger.Interface) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		logger:   log,
	}
}

// Subscribe registers a handler for the named event.
func (d *Dispatcher) Subscribe(eventName string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
}

// Dispatch delivers each event to its subscribers.
func (d *Dispatcher) Dispatch(ctx context.Context, events ...DomainEvent) {
	for _, event := range events {
		d.mu.RLock()
		handlers := d.handlers[event.EventName()]
		d.mu.RUnlock()

		d.logger.Debugw("dispatching domain event",
			"event", event.EventName(),
			"aggregate_id", event.AggregateID(),
			"handlers", len(handlers),
		)

		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
