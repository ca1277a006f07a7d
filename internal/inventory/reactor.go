package inventory

import (
	"context"
	"fmt"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
)

// Reactor keeps stock records aligned with the catalog's product lifecycle:
// a new product gets a zero-quantity record, a deleted product loses its
// record. Both handlers tolerate duplicate delivery.
type Reactor struct {
	svc *Service
}

func NewReactor(svc *Service) *Reactor {
	return &Reactor{svc: svc}
}

func (r *Reactor) Register(reg *bus.Registry) {
	reg.RegisterEvent(contracts.EventTypeProductCreated, r.onProductCreated)
	reg.RegisterEvent(contracts.EventTypeProductDeleted, r.onProductDeleted)
}

func (r *Reactor) onProductCreated(ctx context.Context, e bus.Event) error {
	ev, ok := e.(contracts.ProductCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}
	return r.svc.CreateStockRecord(ctx, ev.ProductID)
}

func (r *Reactor) onProductDeleted(ctx context.Context, e bus.Event) error {
	ev, ok := e.(contracts.ProductDeleted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}
	return r.svc.RemoveByProductID(ctx, ev.ProductID)
}
