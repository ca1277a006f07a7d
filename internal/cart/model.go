package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        string    `json:"cartId"`
	SessionID string    `json:"sessionId"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
}

// Line holds one product entry. PriceAtAdd is fixed when the line is first
// created and never recomputed from the catalog afterwards.
type Line struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceAtAdd string `json:"priceAtAdd"` // decimal string, two fractional digits
}

// Line returns the entry for a product, if present. A cart holds at most one
// line per product id.
func (c *Cart) Line(productID string) (Line, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

// Quantity returns the quantity held for a product, zero when absent.
func (c *Cart) Quantity(productID string) int {
	l, ok := c.Line(productID)
	if !ok {
		return 0
	}
	return l.Quantity
}

// Total sums priceAtAdd × quantity over all lines with exact decimal
// arithmetic, two fractional digits. An empty cart totals "0.00".
func (c *Cart) Total() (string, error) {
	total := decimal.Zero
	for _, l := range c.Lines {
		price, err := decimal.NewFromString(l.PriceAtAdd)
		if err != nil {
			return "", err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.StringFixed(2), nil
}
