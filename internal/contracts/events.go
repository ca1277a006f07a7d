package contracts

const (
	EventTypeProductCreated = "product.created.v1"
	EventTypeProductDeleted = "product.deleted.v1"
)

// ProductCreated is published by the catalog after a product row has been
// committed. Reactors may receive it more than once.
type ProductCreated struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

func (ProductCreated) EventName() string { return EventTypeProductCreated }

// ProductDeleted is published by the catalog after a product row has been
// removed. Carries only the id; everything a reactor needs.
type ProductDeleted struct {
	ProductID string `json:"productId"`
}

func (ProductDeleted) EventName() string { return EventTypeProductDeleted }
