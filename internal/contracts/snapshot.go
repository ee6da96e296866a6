package contracts

import "github.com/ecomkit/shop/internal/money"

// ProductSnapshot is an immutable copy of a product's fields at read time.
// It is the payload carried in events and returned by the catalog's
// synchronous lookup; both services must agree on this shape.
type ProductSnapshot struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    money.Money `json:"price"`
	Quantity int         `json:"quantity"`
}
