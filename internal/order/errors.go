package order

import "fmt"

// ProductNotFoundError rejects admission when the catalog lookup came back
// empty, whether the product is gone or the catalog was unreachable.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %s not found", e.ProductID)
}

// InsufficientStockError rejects admission when the requested quantity exceeds
// the stock known at check time. Both numbers ride along for diagnostics.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
