package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	Get(ctx context.Context, productID string) (StockRecord, error)
	CreateIfAbsent(ctx context.Context, productID string, quantity int) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	DeleteByProductID(ctx context.Context, productID string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Get(ctx context.Context, productID string) (StockRecord, error) {
	var rec StockRecord
	row := r.pool.QueryRow(ctx, `
		SELECT product_id, quantity FROM stock_records WHERE product_id=$1
	`, productID)
	if err := row.Scan(&rec.ProductID, &rec.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StockRecord{}, ErrNotFound
		}
		return StockRecord{}, err
	}
	return rec, nil
}

// CreateIfAbsent inserts a stock record unless one already exists. Duplicate
// delivery of a ProductCreated event therefore leaves the record untouched.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, productID string, quantity int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO stock_records (product_id, quantity)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO NOTHING
	`, productID, quantity)
	return err
}

func (r *PostgresRepository) SetQuantity(ctx context.Context, productID string, quantity int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO stock_records (product_id, quantity)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET quantity=EXCLUDED.quantity, updated_at=now()
	`, productID, quantity)
	return err
}

// DeleteByProductID removes the record for a product. Deleting an absent
// record succeeds, which keeps the ProductDeleted reactor idempotent.
func (r *PostgresRepository) DeleteByProductID(ctx context.Context, productID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM stock_records WHERE product_id=$1`, productID)
	return err
}
