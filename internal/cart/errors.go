package cart

import "fmt"

// InsufficientStockError rejects a quantity change that would exceed the
// available stock. Requested is the total the cart asked for, not the delta.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d", e.ProductID, e.Requested)
}
