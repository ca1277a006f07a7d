package catalog

type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      string  `json:"price"` // decimal string, two fractional digits
	CategoryID *string `json:"categoryId,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
