package contracts

import "fmt"

// ProductNotFoundError reports a product id unknown to the catalog. It crosses
// context boundaries, so it lives with the shared message contracts.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}
