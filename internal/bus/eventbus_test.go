package bus

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEventBus(reg *Registry) (*EventBus, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewEventBus(reg, log.New(&buf, "", 0)), &buf
}

func TestEventBusFansOutInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	var calls []int
	for i := 0; i < 4; i++ {
		i := i
		reg.RegisterEvent("test.event", func(ctx context.Context, e Event) error {
			calls = append(calls, i)
			return nil
		})
	}

	eb, _ := newTestEventBus(reg)
	report := eb.Dispatch(context.Background(), testEvent{})

	assert.Equal(t, []int{0, 1, 2, 3}, calls)
	assert.NoError(t, report.Err())
	assert.Len(t, report.Results, 4)
}

func TestEventBusIsolatesFailingHandler(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("stock storage down")
	var secondRan, thirdRan bool

	reg.RegisterEvent("test.event", func(ctx context.Context, e Event) error { return boom })
	reg.RegisterEvent("test.event", func(ctx context.Context, e Event) error { secondRan = true; return nil })
	reg.RegisterEvent("test.event", func(ctx context.Context, e Event) error { thirdRan = true; return nil })

	eb, logged := newTestEventBus(reg)
	report := eb.Dispatch(context.Background(), testEvent{})

	assert.True(t, secondRan, "failure in one handler must not block the next")
	assert.True(t, thirdRan)

	require.Len(t, report.Results, 3)
	assert.ErrorIs(t, report.Results[0].Err, boom)
	assert.NoError(t, report.Results[1].Err)
	assert.ErrorIs(t, report.Err(), boom)

	assert.Contains(t, logged.String(), "stock storage down")
}

func TestEventBusWithNoSubscribersIsANoOp(t *testing.T) {
	eb, logged := newTestEventBus(NewRegistry())
	report := eb.Dispatch(context.Background(), testEvent{})

	assert.NoError(t, report.Err())
	assert.Empty(t, report.Results)
	assert.Empty(t, logged.String())
}
