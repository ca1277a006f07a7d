package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryQueryHandlerIsExclusive(t *testing.T) {
	reg := NewRegistry()

	h := func(ctx context.Context, q Query) (any, error) { return nil, nil }

	require.NoError(t, reg.RegisterQuery("catalog.product-exists", h))

	err := reg.RegisterQuery("catalog.product-exists", h)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateHandler)
	assert.Contains(t, err.Error(), "catalog.product-exists")

	// A different query name is still free.
	assert.NoError(t, reg.RegisterQuery("catalog.product-price", h))
}

func TestRegistryRejectsNilQueryHandler(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.RegisterQuery("q", nil))
}

func TestRegistryUnknownQueryIsDistinguishable(t *testing.T) {
	reg := NewRegistry()

	h, err := reg.QueryHandlerFor("no.such.query")
	require.Error(t, err)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrNoHandler)
	assert.Contains(t, err.Error(), "no.such.query")
}

func TestRegistryEventHandlersKeepRegistrationOrder(t *testing.T) {
	reg := NewRegistry()

	var calls []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		reg.RegisterEvent("product.deleted.v1", func(ctx context.Context, e Event) error {
			calls = append(calls, name)
			return nil
		})
	}

	handlers := reg.EventHandlersFor("product.deleted.v1")
	require.Len(t, handlers, 3)
	for _, h := range handlers {
		require.NoError(t, h(context.Background(), testEvent{}))
	}
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestRegistryNoEventHandlersIsValid(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.EventHandlersFor("product.created.v1"))
}

type testEvent struct{ name string }

func (e testEvent) EventName() string {
	if e.name == "" {
		return "test.event"
	}
	return e.name
}

type testQuery struct{ name string }

func (q testQuery) QueryName() string {
	if q.name == "" {
		return "test.query"
	}
	return q.name
}
