package order

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ecomkit/shop/internal/contracts"
)

// ProductGateway is the synchronous stock query port into the catalog.
// A nil snapshot means "cannot fulfill": the product may not exist or the
// catalog may be unreachable; the caller cannot tell and must not care.
type ProductGateway interface {
	Fetch(ctx context.Context, productID string) *contracts.ProductSnapshot
}

// DecrementPublisher emits the asynchronous stock decrement after admission.
type DecrementPublisher interface {
	PublishStockDecremented(ctx context.Context, ev contracts.StockDecremented) error
}

type Service struct {
	repo     Repository
	products ProductGateway
	pub      DecrementPublisher
	logger   *log.Logger
}

func NewService(repo Repository, products ProductGateway, pub DecrementPublisher, logger *log.Logger) *Service {
	return &Service{repo: repo, products: products, pub: pub, logger: logger}
}

// CreateOrder admits an order against the stock known right now. Admission is
// optimistic: between this check and the eventual decrement, concurrent orders
// can both pass against stale stock. That race is resolved downstream by the
// reconciler's clamp, not by locking across services.
func (s *Service) CreateOrder(ctx context.Context, orderID, productID, customerName string, quantityOrdered int) (*Order, error) {
	snapshot := s.products.Fetch(ctx, productID)
	if snapshot == nil {
		s.logger.Printf("order rejected: product %s not found (customer=%q)", productID, customerName)
		return nil, &ProductNotFoundError{ProductID: productID}
	}

	if snapshot.Quantity < quantityOrdered {
		s.logger.Printf("order rejected: insufficient stock for product %s (requested=%d available=%d customer=%q)",
			productID, quantityOrdered, snapshot.Quantity, customerName)
		return nil, &InsufficientStockError{
			ProductID: productID,
			Requested: quantityOrdered,
			Available: snapshot.Quantity,
		}
	}

	if orderID == "" {
		orderID = uuid.Must(uuid.NewV7()).String()
	}

	o := &Order{
		ID:              orderID,
		ProductID:       productID,
		CustomerName:    customerName,
		QuantityOrdered: quantityOrdered,
		Status:          StatusProcessing,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Fire and forget: the order is already persisted, so a lost publish must
	// not roll it back. The decrement carries the pre-decrement snapshot.
	ev := contracts.NewStockDecremented(*snapshot, quantityOrdered)
	if err := s.pub.PublishStockDecremented(ctx, ev); err != nil {
		s.logger.Printf("publish StockDecremented for order %s: %v", o.ID, err)
	}

	s.logger.Printf("order %s created: product=%s quantity=%d customer=%q",
		o.ID, productID, quantityOrdered, customerName)

	return o, nil
}

// GetOrder joins the stored order with a fresh snapshot fetch, so the product
// fields reflect current catalog state rather than order-time state.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*OrderWithProduct, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}

	return &OrderWithProduct{
		Order:   *o,
		Product: s.products.Fetch(ctx, o.ProductID),
	}, nil
}

// ListOrders returns one page of orders, each enriched with a fresh snapshot.
// Orders whose product no longer resolves are dropped from the page.
func (s *Service) ListOrders(ctx context.Context, page, limit int) ([]OrderWithProduct, contracts.Pagination, error) {
	offset := (page - 1) * limit

	orders, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, contracts.Pagination{}, err
	}

	enriched := make([]OrderWithProduct, 0, len(orders))
	for _, o := range orders {
		product := s.products.Fetch(ctx, o.ProductID)
		if product == nil {
			continue
		}
		enriched = append(enriched, OrderWithProduct{Order: o, Product: product})
	}

	return enriched, contracts.NewPagination(page, limit, total), nil
}
