package bus

import "context"

// QueryBus dispatches a query to its single registered handler on the calling
// goroutine and returns the handler's result unchanged. The bus itself holds
// no per-call state; handler errors propagate to the caller without retries.
type QueryBus struct {
	registry *Registry
}

func NewQueryBus(registry *Registry) *QueryBus {
	return &QueryBus{registry: registry}
}

func (b *QueryBus) Execute(ctx context.Context, q Query) (any, error) {
	h, err := b.registry.QueryHandlerFor(q.QueryName())
	if err != nil {
		return nil, err
	}
	return h(ctx, q)
}
