package contracts

const (
	QueryProductExists     = "catalog.product-exists"
	QueryProductPrice      = "catalog.product-price"
	QueryProductNames      = "catalog.product-names"
	QueryCartQuantity      = "cart.quantity-in-cart"
	QueryStockAvailability = "inventory.stock-availability"
	QueryStockQuantity     = "inventory.stock-quantity"
)

type ProductExists struct {
	ProductID string
}

func (ProductExists) QueryName() string { return QueryProductExists }

type ProductPrice struct {
	ProductID string
}

func (ProductPrice) QueryName() string { return QueryProductPrice }

type ProductNames struct {
	ProductIDs []string
}

func (ProductNames) QueryName() string { return QueryProductNames }

type CartQuantity struct {
	SessionID string
	ProductID string
}

func (CartQuantity) QueryName() string { return QueryCartQuantity }

type StockAvailability struct {
	ProductID string
	Quantity  int
}

func (StockAvailability) QueryName() string { return QueryStockAvailability }

type StockQuantity struct {
	ProductID string
}

func (StockQuantity) QueryName() string { return QueryStockQuantity }
