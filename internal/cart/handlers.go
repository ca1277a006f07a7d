package cart

import (
	"context"
	"fmt"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
)

// RegisterQueryHandlers exposes the cart read model on the query bus,
// delegating to the same adapter logic the catalog port uses.
func RegisterQueryHandlers(reg *bus.Registry, svc *Service) error {
	adapter := NewQuantityAdapter(svc)

	return reg.RegisterQuery(contracts.QueryCartQuantity, func(ctx context.Context, q bus.Query) (any, error) {
		cq, ok := q.(contracts.CartQuantity)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", q)
		}
		return adapter.QuantityInCart(ctx, cq.SessionID, cq.ProductID)
	})
}
