package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
	"github.com/pwalczak/storefront/internal/dedup"
)

// Consumer bridges enveloped events from RabbitMQ back into the in-process
// event bus. Delivery is at-least-once: the checkpoint skips sequences the
// consumer has already processed, and the reactors behind the bus are
// idempotent for anything that slips through.
type Consumer struct {
	events      *bus.EventBus
	checkpoints *dedup.Repository
	logger      *log.Logger
	name        string
}

func NewConsumer(events *bus.EventBus, checkpoints *dedup.Repository, logger *log.Logger, name string) *Consumer {
	if name == "" {
		name = "storefront-relay"
	}
	return &Consumer{events: events, checkpoints: checkpoints, logger: logger, name: name}
}

// Start declares the consumer's queue, binds it to the events exchange and
// consumes until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if err := declareEventsExchange(ch); err != nil {
		return fmt.Errorf("declare events exchange: %w", err)
	}

	queue := c.name + ".events"
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, key := range []string{contracts.EventTypeProductCreated, contracts.EventTypeProductDeleted} {
		if err := ch.QueueBind(queue, key, EventsExchange, false, nil); err != nil {
			return fmt.Errorf("queue bind %s: %w", key, err)
		}
	}

	msgs, err := ch.Consume(queue, c.name, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				c.logger.Printf("stopping %s consumer", queue)
				return
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Printf("messages channel closed")
					return
				}
				if err := c.handle(ctx, msg.Body); err != nil {
					c.logger.Printf("handle message: %v", err)
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	env, err := parseEnvelope(body)
	if err != nil {
		return err
	}
	if err := env.Validate(); err != nil {
		return fmt.Errorf("invalid envelope: %w", err)
	}

	last, ok, err := c.checkpoints.LastSequence(ctx, c.name, env.PartitionKey)
	if err != nil {
		return err
	}
	if ok && env.Sequence <= last {
		c.logger.Printf("skip duplicate %s partition=%s seq=%d last=%d", env.EventName, env.PartitionKey, env.Sequence, last)
		return nil
	}

	event, err := decodeEvent(env)
	if err != nil {
		return err
	}

	if err := c.events.Dispatch(ctx, event).Err(); err != nil {
		return fmt.Errorf("dispatch %s: %w", env.EventName, err)
	}

	return c.checkpoints.Advance(ctx, c.name, env.PartitionKey, env.Sequence)
}

// decodeEvent maps an envelope back onto its concrete message type. The set
// of relayed events is closed, so unknown names are an error, not a skip.
func decodeEvent(env Envelope) (bus.Event, error) {
	switch env.EventName {
	case contracts.EventTypeProductCreated:
		var ev contracts.ProductCreated
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", env.EventName, err)
		}
		return ev, nil
	case contracts.EventTypeProductDeleted:
		var ev contracts.ProductDeleted
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", env.EventName, err)
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("unknown event %q", env.EventName)
	}
}
