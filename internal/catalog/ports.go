package catalog

import "context"

// StockInfo is the catalog's view into the inventory context: current stock
// quantity for a product, zero when no record exists.
type StockInfo interface {
	QuantityFor(ctx context.Context, productID string) (int, error)
}

// CartQuantity is the catalog's view into the cart context: how many units of
// a product a given session already holds. Absent cart or line means zero.
type CartQuantity interface {
	QuantityInCart(ctx context.Context, sessionID, productID string) (int, error)
}
