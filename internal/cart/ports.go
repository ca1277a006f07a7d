package cart

import "context"

// ProductProvider is the cart's read-only view into the catalog context.
// Implemented by the catalog's adapter over its own repository; the cart never
// reaches into catalog storage directly.
type ProductProvider interface {
	ProductExists(ctx context.Context, productID string) (bool, error)
	// Price fails with *contracts.ProductNotFoundError when the product is absent.
	Price(ctx context.Context, productID string) (string, error)
	// ProductName fails with *contracts.ProductNotFoundError when the product is absent.
	ProductName(ctx context.Context, productID string) (string, error)
	// ProductNames resolves all ids in one batched lookup; unknown ids are omitted.
	ProductNames(ctx context.Context, productIDs []string) (map[string]string, error)
}

// StockChecker is the cart's read-only view into the inventory context.
// A product with no stock record is never available.
type StockChecker interface {
	IsAvailable(ctx context.Context, productID string, quantity int) (bool, error)
}
