package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
	"github.com/pwalczak/storefront/internal/sequence"
)

// Publisher forwards catalog lifecycle events from the in-process bus to
// RabbitMQ. It subscribes like any other reactor, so it only sees events the
// publishing transaction has already committed.
type Publisher struct {
	ch       *amqp.Channel
	seq      *sequence.Repository
	producer string
}

func NewPublisher(conn *amqp.Connection, seq *sequence.Repository, producer string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	if producer == "" {
		producer = "storefront"
	}
	return &Publisher{ch: ch, seq: seq, producer: producer}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) Register(reg *bus.Registry) {
	reg.RegisterEvent(contracts.EventTypeProductCreated, p.forward)
	reg.RegisterEvent(contracts.EventTypeProductDeleted, p.forward)
}

func (p *Publisher) forward(ctx context.Context, e bus.Event) error {
	var partitionKey string
	switch ev := e.(type) {
	case contracts.ProductCreated:
		partitionKey = ev.ProductID
	case contracts.ProductDeleted:
		partitionKey = ev.ProductID
	default:
		return fmt.Errorf("relay: unsupported event %q", e.EventName())
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", e.EventName(), err)
	}

	seq, err := p.seq.Next(ctx, partitionKey)
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	env := Envelope{
		EventName:    e.EventName(),
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     p.producer,
		PartitionKey: partitionKey,
		Sequence:     seq,
		OccurredAt:   time.Now().UTC(),
		Payload:      payload,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", e.EventName(), err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		e.EventName(), // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
