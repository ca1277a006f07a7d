package bus

import "context"

// Query is a request message: exactly one handler, synchronous result.
type Query interface {
	QueryName() string
}

// Event is a notification message: zero or more handlers, no result.
type Event interface {
	EventName() string
}

type QueryHandler func(ctx context.Context, q Query) (any, error)

type EventHandler func(ctx context.Context, e Event) error
