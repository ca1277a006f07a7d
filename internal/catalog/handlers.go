package catalog

import (
	"context"
	"fmt"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
)

// RegisterQueryHandlers exposes the catalog read model on the query bus.
// This is the second facade over the same repository the adapters use; the
// query logic itself is not duplicated.
func RegisterQueryHandlers(reg *bus.Registry, repo Repository) error {
	adapter := NewCartProductAdapter(repo)

	if err := reg.RegisterQuery(contracts.QueryProductExists, func(ctx context.Context, q bus.Query) (any, error) {
		pq, ok := q.(contracts.ProductExists)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", q)
		}
		return adapter.ProductExists(ctx, pq.ProductID)
	}); err != nil {
		return err
	}

	if err := reg.RegisterQuery(contracts.QueryProductPrice, func(ctx context.Context, q bus.Query) (any, error) {
		pq, ok := q.(contracts.ProductPrice)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", q)
		}
		return adapter.Price(ctx, pq.ProductID)
	}); err != nil {
		return err
	}

	return reg.RegisterQuery(contracts.QueryProductNames, func(ctx context.Context, q bus.Query) (any, error) {
		pq, ok := q.(contracts.ProductNames)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", q)
		}
		return adapter.ProductNames(ctx, pq.ProductIDs)
	})
}
