package catalog

import (
	"github.com/ecomkit/shop/internal/contracts"
	"github.com/ecomkit/shop/internal/money"
)

// Product is the catalog's authoritative record. The catalog service is its
// only writer; everyone else sees snapshots.
type Product struct {
	ID         string
	Name       string
	PriceCents int64
	Quantity   int
}

// Snapshot builds a fresh transfer copy of the product's current fields.
func (p Product) Snapshot() contracts.ProductSnapshot {
	return contracts.ProductSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Price:    money.FromCents(p.PriceCents),
		Quantity: p.Quantity,
	}
}
