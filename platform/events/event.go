// Package events is an in-process publish/subscribe bus used to decouple
// modules. It carries no business logic.
package events

import "context"

// Event is anything published on the bus. EventName is the routing key.
type Event interface {
	EventName() string
}

// Handler reacts to a published event.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function act as a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes events to handlers subscribed by event name.
type Bus interface {
	// Publish hands event to every subscriber without waiting for them.
	Publish(ctx context.Context, event Event)
	Subscribe(eventName string, handler Handler)
}
