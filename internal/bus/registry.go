package bus

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoHandler is returned when a query is dispatched without a registered handler.
	ErrNoHandler = errors.New("no handler registered")
	// ErrDuplicateHandler is returned when a second handler is registered for a query.
	ErrDuplicateHandler = errors.New("handler already registered")
)

// Registry maps message names to their handlers. A query name resolves to
// exactly one handler; an event name resolves to every subscriber in
// registration order.
type Registry struct {
	mu      sync.RWMutex
	queries map[string]QueryHandler
	events  map[string][]EventHandler
}

func NewRegistry() *Registry {
	return &Registry{
		queries: make(map[string]QueryHandler),
		events:  make(map[string][]EventHandler),
	}
}

// RegisterQuery binds the single handler for a query name. Registering a
// second handler for the same name is a configuration error and fails here,
// before any traffic is served.
func (r *Registry) RegisterQuery(name string, h QueryHandler) error {
	if h == nil {
		return fmt.Errorf("query %q: nil handler", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.queries[name]; ok {
		return fmt.Errorf("query %q: %w", name, ErrDuplicateHandler)
	}
	r.queries[name] = h
	return nil
}

// RegisterEvent appends a subscriber for an event name. Subscribers are
// invoked in the order they were registered.
func (r *Registry) RegisterEvent(name string, h EventHandler) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[name] = append(r.events[name], h)
}

// QueryHandlerFor resolves the handler for a query name. A missing handler is
// a distinguishable failure, never an empty success.
func (r *Registry) QueryHandlerFor(name string) (QueryHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.queries[name]
	if !ok {
		return nil, fmt.Errorf("query %q: %w", name, ErrNoHandler)
	}
	return h, nil
}

// EventHandlersFor returns the subscribers for an event name in registration
// order. No subscribers is a valid outcome for events.
func (r *Registry) EventHandlersFor(name string) []EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handlers := make([]EventHandler, len(r.events[name]))
	copy(handlers, r.events[name])
	return handlers
}
