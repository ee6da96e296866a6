package order

import (
	"github.com/ecomkit/shop/internal/contracts"
)

// Order is owned by the order service. ProductID is a weak reference into the
// catalog, resolved to a snapshot at read time.
type Order struct {
	ID              string `json:"orderId"`
	ProductID       string `json:"productId"`
	CustomerName    string `json:"customerName"`
	QuantityOrdered int    `json:"quantityOrdered"`
	Status          Status `json:"orderStatus"`
}

// OrderWithProduct joins a stored order with a fresh catalog snapshot.
// Product is nil when the catalog could not resolve the reference.
type OrderWithProduct struct {
	Order   Order
	Product *contracts.ProductSnapshot
}
