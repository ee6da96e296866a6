package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, offset, limit int) ([]Order, int, error)
	FindByCustomerName(ctx context.Context, customerName string) ([]Order, error)
	FindByProductID(ctx context.Context, productID string) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (id, product_id, customer_name, quantity_ordered, order_status)
         VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.ProductID, o.CustomerName, o.QuantityOrdered, o.Status,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, product_id, customer_name, quantity_ordered, order_status
         FROM orders WHERE id = $1`,
		orderID,
	).Scan(&o.ID, &o.ProductID, &o.CustomerName, &o.QuantityOrdered, &o.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return &o, nil
}

func (r *repo) List(ctx context.Context, offset, limit int) ([]Order, int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, customer_name, quantity_ordered, order_status
         FROM orders ORDER BY id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	return orders, total, nil
}

func (r *repo) FindByCustomerName(ctx context.Context, customerName string) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, customer_name, quantity_ordered, order_status
         FROM orders WHERE customer_name = $1 ORDER BY id DESC`,
		customerName,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders by customer: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *repo) FindByProductID(ctx context.Context, productID string) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, customer_name, quantity_ordered, order_status
         FROM orders WHERE product_id = $1 ORDER BY id DESC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders by product: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *repo) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET order_status = $2 WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.CustomerName, &o.QuantityOrdered, &o.Status); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return orders, nil
}
