// Package events provides the domain event substrate. Aggregates record
// events as they change; the application layer publishes them after the
// owning transaction commits.
package events

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
)

// DomainEvent is implemented by every event an aggregate can emit.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() string
}

// BaseEvent carries the fields common to all events.
type BaseEvent struct {
	name        string
	aggregateID string
	occurredAt  time.Time
}

func NewBaseEvent(name, aggregateID string) BaseEvent {
	return BaseEvent{
		name:        name,
		aggregateID: aggregateID,
		occurredAt:  biztime.Now(),
	}
}

func (e BaseEvent) EventName() string   { return e.name }
func (e BaseEvent) AggregateID() string { return e.aggregateID }
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Recorder accumulates events on an aggregate until they are pulled.
type Recorder struct {
	pending []DomainEvent
}

func (r *Recorder) Record(event DomainEvent) {
	r.pending = append(r.pending, event)
}

// PullEvents returns all recorded events and clears the recorder.
func (r *Recorder) PullEvents() []DomainEvent {
	events := r.pending
	r.pending = nil
	return events
}
