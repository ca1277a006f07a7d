package inventory

type StockRecord struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
