package eventbus

import "context"

// Event is anything that can be published on a Bus.
type Event interface {
	Type() string
}

// Keyed events carry a partition key so that events of one aggregate stay ordered.
type Keyed interface {
	PartitionKey() string
}

// Identified events carry a unique id that survives redelivery.
type Identified interface {
	EventID() string
}

// HandlerFunc processes one event.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus defines the contract for publishing and subscribing to ledger events.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event Event) error
}
