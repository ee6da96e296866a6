package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ecomkit/shop/internal/contracts"
	"github.com/ecomkit/shop/internal/money"
)

// StockEventPublisher is what the catalog write path needs from the transport.
type StockEventPublisher interface {
	PublishStockCreated(ctx context.Context, ev contracts.StockCreated) error
	PublishStockUpdated(ctx context.Context, ev contracts.StockUpdated) error
}

// ProductValidator can reject product input before it is persisted. A nil
// validator accepts everything, including negative price and quantity.
type ProductValidator func(name string, price money.Money, quantity int) error

type Service struct {
	repo     Repository
	pub      StockEventPublisher
	validate ProductValidator
	logger   *log.Logger
}

func NewService(repo Repository, pub StockEventPublisher, validate ProductValidator, logger *log.Logger) *Service {
	return &Service{repo: repo, pub: pub, validate: validate, logger: logger}
}

func (s *Service) CreateProduct(ctx context.Context, name string, price float64, quantity int) (Product, error) {
	priceVal := money.FromMajorUnits(price)

	if s.validate != nil {
		if err := s.validate(name, priceVal, quantity); err != nil {
			return Product{}, err
		}
	}

	p := Product{
		ID:         newID(),
		Name:       name,
		PriceCents: priceVal.Cents(),
		Quantity:   quantity,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, err
	}

	if err := s.pub.PublishStockCreated(ctx, contracts.NewStockCreated(p.Snapshot())); err != nil {
		// The product is persisted; downstream consumers catch up via later events.
		s.logger.Printf("publish StockCreated for product %s: %v", p.ID, err)
	}

	return p, nil
}

func (s *Service) GetProduct(ctx context.Context, productID string) (Product, error) {
	return s.repo.Get(ctx, productID)
}

func (s *Service) ListProducts(ctx context.Context, page, limit int) ([]Product, contracts.Pagination, error) {
	offset := (page - 1) * limit

	products, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, contracts.Pagination{}, err
	}

	return products, contracts.NewPagination(page, limit, total), nil
}

// UpdateQuantity writes an absolute quantity and, if the product still exists
// afterwards, publishes a StockUpdated event with the fresh snapshot. The
// boolean reports whether the write touched a row.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	updated, err := s.repo.UpdateQuantity(ctx, productID, quantity)
	if err != nil {
		return false, err
	}
	if !updated {
		return false, nil
	}

	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Deleted between write and re-read; nothing to announce.
			return true, nil
		}
		return true, fmt.Errorf("reload product %s: %w", productID, err)
	}

	if err := s.pub.PublishStockUpdated(ctx, contracts.NewStockUpdated(p.Snapshot())); err != nil {
		return true, fmt.Errorf("publish StockUpdated for product %s: %w", productID, err)
	}

	return true, nil
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
