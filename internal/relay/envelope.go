package relay

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope wraps a domain event for out-of-process delivery. PartitionKey is
// the product id, so the per-partition sequence orders all events about one
// product.
type Envelope struct {
	EventName    string          `json:"eventName"`
	EventVersion int             `json:"eventVersion"`
	EventID      string          `json:"eventId"`
	Producer     string          `json:"producer"`
	PartitionKey string          `json:"partitionKey"`
	Sequence     int64           `json:"sequence"`
	OccurredAt   time.Time       `json:"occurredAt"`
	Payload      json.RawMessage `json:"payload"`
}

func (e Envelope) Validate() error {
	if e.EventName == "" {
		return fmt.Errorf("missing eventName")
	}
	if e.EventID == "" {
		return fmt.Errorf("missing eventId")
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	if e.Sequence <= 0 {
		return fmt.Errorf("missing sequence")
	}
	return nil
}

func parseEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}
