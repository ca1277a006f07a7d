package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/pwalczak/storefront/internal/contracts"
)

// CartProductAdapter gives the cart context typed, read-only access to the
// product catalog without going through the query bus. It satisfies the cart
// package's ProductProvider port.
type CartProductAdapter struct {
	repo Repository
}

func NewCartProductAdapter(repo Repository) *CartProductAdapter {
	return &CartProductAdapter{repo: repo}
}

func (a *CartProductAdapter) ProductExists(ctx context.Context, productID string) (bool, error) {
	return a.repo.Exists(ctx, productID)
}

func (a *CartProductAdapter) Price(ctx context.Context, productID string) (string, error) {
	p, err := a.repo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", &contracts.ProductNotFoundError{ProductID: productID}
		}
		return "", fmt.Errorf("load product %s: %w", productID, err)
	}
	return p.Price, nil
}

func (a *CartProductAdapter) ProductName(ctx context.Context, productID string) (string, error) {
	p, err := a.repo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", &contracts.ProductNotFoundError{ProductID: productID}
		}
		return "", fmt.Errorf("load product %s: %w", productID, err)
	}
	return p.Name, nil
}

// ProductNames resolves all ids in a single batched lookup. Unknown ids are
// omitted from the result rather than reported as an error.
func (a *CartProductAdapter) ProductNames(ctx context.Context, productIDs []string) (map[string]string, error) {
	if len(productIDs) == 0 {
		return map[string]string{}, nil
	}
	products, err := a.repo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}
