package cart

import (
	"context"
	"fmt"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
)

// Reactor removes a deleted product's lines from every cart. Registered
// independently of the inventory reactor; the event bus isolates failures so
// both cleanups are always attempted.
type Reactor struct {
	svc *Service
}

func NewReactor(svc *Service) *Reactor {
	return &Reactor{svc: svc}
}

func (r *Reactor) Register(reg *bus.Registry) {
	reg.RegisterEvent(contracts.EventTypeProductDeleted, r.onProductDeleted)
}

func (r *Reactor) onProductDeleted(ctx context.Context, e bus.Event) error {
	ev, ok := e.(contracts.ProductDeleted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}
	return r.svc.RemoveItemsByProductID(ctx, ev.ProductID)
}
