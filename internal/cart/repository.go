package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	// FindBySessionID returns nil, nil when no cart exists for the session.
	FindBySessionID(ctx context.Context, sessionID string) (*Cart, error)
	Create(ctx context.Context, c *Cart) error
	UpsertLine(ctx context.Context, cartID string, l Line) error
	DeleteLine(ctx context.Context, cartID, productID string) error
	ClearLines(ctx context.Context, cartID string) error
	// DeleteLinesByProduct removes the product's line from every cart in
	// storage. Used by the ProductDeleted reactor.
	DeleteLinesByProduct(ctx context.Context, productID string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) FindBySessionID(ctx context.Context, sessionID string) (*Cart, error) {
	var c Cart
	row := r.pool.QueryRow(ctx, `
		SELECT id, session_id, created_at FROM carts WHERE session_id=$1
	`, sessionID)
	if err := row.Scan(&c.ID, &c.SessionID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT product_id, quantity, price_at_add
		FROM cart_lines
		WHERE cart_id=$1
		ORDER BY id
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.PriceAtAdd); err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *Cart) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO carts (id, session_id, created_at) VALUES ($1, $2, $3)
	`, c.ID, c.SessionID, c.CreatedAt)
	return err
}

func (r *PostgresRepository) UpsertLine(ctx context.Context, cartID string, l Line) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_lines (cart_id, product_id, quantity, price_at_add)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity=EXCLUDED.quantity
	`, cartID, l.ProductID, l.Quantity, l.PriceAtAdd)
	return err
}

func (r *PostgresRepository) DeleteLine(ctx context.Context, cartID, productID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM cart_lines WHERE cart_id=$1 AND product_id=$2
	`, cartID, productID)
	return err
}

func (r *PostgresRepository) ClearLines(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id=$1`, cartID)
	return err
}

func (r *PostgresRepository) DeleteLinesByProduct(ctx context.Context, productID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE product_id=$1`, productID)
	return err
}
