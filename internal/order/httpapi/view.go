package httpapi

import (
	"github.com/ecomkit/shop/internal/contracts"
	"github.com/ecomkit/shop/internal/order"
)

type orderView struct {
	OrderID         string                    `json:"orderId"`
	Product         contracts.ProductSnapshot `json:"product"`
	CustomerName    string                    `json:"customerName"`
	QuantityOrdered int                       `json:"quantityOrdered"`
	OrderStatus     order.Status              `json:"orderStatus"`
}

// presentOrder renders an enriched order. When the product no longer resolves
// a placeholder keeps the response shape stable.
func presentOrder(ow order.OrderWithProduct) orderView {
	product := ow.Product
	if product == nil {
		product = &contracts.ProductSnapshot{
			ID:   ow.Order.ProductID,
			Name: "Unknown Product",
		}
	}

	return orderView{
		OrderID:         ow.Order.ID,
		Product:         *product,
		CustomerName:    ow.Order.CustomerName,
		QuantityOrdered: ow.Order.QuantityOrdered,
		OrderStatus:     ow.Order.Status,
	}
}
