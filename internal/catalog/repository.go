package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	Create(ctx context.Context, p Product) error
	Get(ctx context.Context, productID string) (Product, error)
	List(ctx context.Context, offset, limit int) ([]Product, int, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, price_cents, quantity)
		VALUES ($1, $2, $3, $4)
	`, p.ID, p.Name, p.PriceCents, p.Quantity)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, productID string) (Product, error) {
	var p Product
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, price_cents, quantity FROM products WHERE id=$1
	`, productID)
	if err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]Product, int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price_cents, quantity FROM products
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Quantity); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	return products, total, nil
}

// UpdateQuantity writes an absolute quantity for one product. It reports false
// when no row was touched; a concurrent delete is a legitimate outcome here,
// not a transport error.
func (r *PostgresRepository) UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET quantity=$2, updated_at=now() WHERE id=$1
	`, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("update quantity: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
