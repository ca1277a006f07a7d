package inventory

import (
	"context"
	"fmt"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
)

// RegisterQueryHandlers exposes stock lookups on the query bus, delegating to
// the same service the adapters wrap.
func RegisterQueryHandlers(reg *bus.Registry, svc *Service) error {
	if err := reg.RegisterQuery(contracts.QueryStockAvailability, func(ctx context.Context, q bus.Query) (any, error) {
		sq, ok := q.(contracts.StockAvailability)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", q)
		}
		return svc.IsAvailable(ctx, sq.ProductID, sq.Quantity)
	}); err != nil {
		return err
	}

	return reg.RegisterQuery(contracts.QueryStockQuantity, func(ctx context.Context, q bus.Query) (any, error) {
		sq, ok := q.(contracts.StockQuantity)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", q)
		}
		return svc.QuantityFor(ctx, sq.ProductID)
	})
}
