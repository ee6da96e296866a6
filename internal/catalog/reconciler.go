package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ecomkit/shop/internal/contracts"
)

// Outcome is the terminal state of processing one decrement event.
type Outcome string

const (
	OutcomeResolved Outcome = "resolved"
	OutcomeClamped  Outcome = "clamped"
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailed   Outcome = "failed"
)

// ProcessedEventStore remembers event ids that have already been applied, so
// redelivered decrements are skipped instead of applied twice. Optional: with
// no store configured the reconciler accepts the at-least-once duplicate risk.
type ProcessedEventStore interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}

// Reconciler applies StockDecremented events to the authoritative product
// store. It never trusts the quantity embedded in the event; it re-reads the
// current product, clamps the result at zero, writes it back, and lets the
// catalog service announce the new quantity.
type Reconciler struct {
	service   *Service
	processed ProcessedEventStore
	logger    *log.Logger
}

func NewReconciler(service *Service, processed ProcessedEventStore, logger *log.Logger) *Reconciler {
	return &Reconciler{service: service, processed: processed, logger: logger}
}

// Handle is the consumer entrypoint. A returned error means "not processed":
// the transport NACKs the delivery and its redelivery policy applies.
func (r *Reconciler) Handle(ctx context.Context, body []byte) error {
	var ev contracts.StockDecremented
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal StockDecremented: %w", err)
	}
	if ev.Product.ID == "" {
		return fmt.Errorf("missing product id in StockDecremented")
	}

	_, err := r.Apply(ctx, ev)
	return err
}

// Apply runs the decrement state machine for one event.
func (r *Reconciler) Apply(ctx context.Context, ev contracts.StockDecremented) (Outcome, error) {
	if r.processed != nil && ev.EventID != "" {
		seen, err := r.processed.Seen(ctx, ev.EventID)
		if err != nil {
			return OutcomeFailed, fmt.Errorf("check processed event %s: %w", ev.EventID, err)
		}
		if seen {
			r.logger.Printf("skip duplicate event %s for product %s", ev.EventID, ev.Product.ID)
			return OutcomeResolved, nil
		}
	}

	// Only the id and amount are trusted; the embedded snapshot may be stale.
	current, err := r.service.GetProduct(ctx, ev.Product.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.logger.Printf("product %s not found for quantity decrease, dropping event", ev.Product.ID)
			return OutcomeNotFound, nil
		}
		return OutcomeFailed, fmt.Errorf("lookup product %s: %w", ev.Product.ID, err)
	}

	outcome := OutcomeResolved
	newQuantity := current.Quantity - ev.Amount
	if newQuantity < 0 {
		r.logger.Printf("ERROR decrement would leave product %s negative: current=%d amount=%d computed=%d, clamping to 0",
			ev.Product.ID, current.Quantity, ev.Amount, newQuantity)
		newQuantity = 0
		outcome = OutcomeClamped
	}

	updated, err := r.service.UpdateQuantity(ctx, ev.Product.ID, newQuantity)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("apply decrement for product %s: %w", ev.Product.ID, err)
	}
	if !updated {
		r.logger.Printf("ERROR failed to persist quantity %d for product %s", newQuantity, ev.Product.ID)
		return OutcomeFailed, nil
	}

	if r.processed != nil && ev.EventID != "" {
		if err := r.processed.MarkProcessed(ctx, ev.EventID); err != nil {
			// The decrement is applied; at worst a redelivery reaches the
			// quantity re-read again. Log and move on.
			r.logger.Printf("mark event %s processed: %v", ev.EventID, err)
		}
	}

	r.logger.Printf("product %s quantity %d -> %d (amount=%d reason=%s)",
		ev.Product.ID, current.Quantity, newQuantity, ev.Amount, ev.Reason)

	return outcome, nil
}
