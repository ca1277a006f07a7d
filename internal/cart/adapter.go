package cart

import "context"

// QuantityAdapter satisfies the catalog package's CartQuantity port: how many
// units of a product the session's cart already holds. Absent cart or line
// yields zero, never an error.
type QuantityAdapter struct {
	svc *Service
}

func NewQuantityAdapter(svc *Service) *QuantityAdapter {
	return &QuantityAdapter{svc: svc}
}

func (a *QuantityAdapter) QuantityInCart(ctx context.Context, sessionID, productID string) (int, error) {
	c, err := a.svc.Find(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, nil
	}
	return c.Quantity(productID), nil
}
