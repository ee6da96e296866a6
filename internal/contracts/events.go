package contracts

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeStockCreated     = "StockCreated"
	EventTypeStockUpdated     = "StockUpdated"
	EventTypeStockDecremented = "StockDecremented"

	// ReasonOrderCreated tags decrements that originate from order admission.
	ReasonOrderCreated = "order_created"
)

// StockCreated is published by the catalog service after a product is created.
type StockCreated struct {
	EventType string          `json:"eventType"`
	EventID   string          `json:"eventId"`
	Product   ProductSnapshot `json:"product"`
	Timestamp time.Time       `json:"timestamp"`
}

// StockUpdated is published by the catalog service after a product's
// quantity changes, carrying the fresh post-write snapshot.
type StockUpdated struct {
	EventType string          `json:"eventType"`
	EventID   string          `json:"eventId"`
	Product   ProductSnapshot `json:"product"`
	Timestamp time.Time       `json:"timestamp"`
}

// StockDecremented is published by the order service when an order is
// admitted. The embedded snapshot is the product as seen at order time and
// may be stale by the time the event is consumed; consumers must trust only
// the product id and the amount, and re-read current state themselves.
type StockDecremented struct {
	EventType string          `json:"eventType"`
	EventID   string          `json:"eventId"`
	Product   ProductSnapshot `json:"product"`
	Amount    int             `json:"amount"`
	Reason    string          `json:"reason"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewStockCreated(product ProductSnapshot) StockCreated {
	return StockCreated{
		EventType: EventTypeStockCreated,
		EventID:   uuid.NewString(),
		Product:   product,
		Timestamp: time.Now().UTC(),
	}
}

func NewStockUpdated(product ProductSnapshot) StockUpdated {
	return StockUpdated{
		EventType: EventTypeStockUpdated,
		EventID:   uuid.NewString(),
		Product:   product,
		Timestamp: time.Now().UTC(),
	}
}

func NewStockDecremented(product ProductSnapshot, amount int) StockDecremented {
	return StockDecremented{
		EventType: EventTypeStockDecremented,
		EventID:   uuid.NewString(),
		Product:   product,
		Amount:    amount,
		Reason:    ReasonOrderCreated,
		Timestamp: time.Now().UTC(),
	}
}
