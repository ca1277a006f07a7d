package inventory

import "context"

// AvailabilityAdapter satisfies the cart package's StockChecker port.
type AvailabilityAdapter struct {
	svc *Service
}

func NewAvailabilityAdapter(svc *Service) *AvailabilityAdapter {
	return &AvailabilityAdapter{svc: svc}
}

func (a *AvailabilityAdapter) IsAvailable(ctx context.Context, productID string, quantity int) (bool, error) {
	return a.svc.IsAvailable(ctx, productID, quantity)
}

// StockInfoAdapter satisfies the catalog package's StockInfo port.
type StockInfoAdapter struct {
	svc *Service
}

func NewStockInfoAdapter(svc *Service) *StockInfoAdapter {
	return &StockInfoAdapter{svc: svc}
}

func (a *StockInfoAdapter) QuantityFor(ctx context.Context, productID string) (int, error) {
	return a.svc.QuantityFor(ctx, productID)
}
