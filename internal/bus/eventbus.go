package bus

import (
	"context"
	"errors"
	"log"
)

// HandlerResult records the outcome of one subscriber invocation.
type HandlerResult struct {
	Index int
	Err   error
}

// Report aggregates the per-subscriber outcomes of a single dispatch.
type Report struct {
	Event   string
	Results []HandlerResult
}

// Err joins all subscriber failures, nil when every subscriber succeeded.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// EventBus fans an event out to every subscriber in registration order.
// A failing subscriber is isolated: the remaining subscribers still run and
// the failure is logged and collected into the returned Report. One context's
// failure to react must not block another's.
type EventBus struct {
	registry *Registry
	logger   *log.Logger
}

func NewEventBus(registry *Registry, logger *log.Logger) *EventBus {
	return &EventBus{registry: registry, logger: logger}
}

func (b *EventBus) Dispatch(ctx context.Context, e Event) Report {
	name := e.EventName()
	report := Report{Event: name}
	for i, h := range b.registry.EventHandlersFor(name) {
		err := h(ctx, e)
		if err != nil {
			b.logger.Printf("event %s: handler %d failed: %v", name, i, err)
		}
		report.Results = append(report.Results, HandlerResult{Index: i, Err: err})
	}
	return report
}
