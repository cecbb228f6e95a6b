package product

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"stocklens/internal/product"
)

// PostgresStore persists records in Postgres through the pgx stdlib driver.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return errors.New("store is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS products (
  id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL DEFAULT 0,
  price_cents BIGINT NOT NULL DEFAULT 0,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
  PRIMARY KEY (user_id, id)
);
CREATE INDEX IF NOT EXISTS idx_products_user_id ON products (user_id);
`)
	})
	return s.schemaErr
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (product.Product, error) {
	var p product.Product
	var cents int64
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Category, &p.Quantity, &cents)
	if err != nil {
		return product.Product{}, err
	}
	p.Price = product.Cents(cents)
	return p, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]product.Product, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, name, category, quantity, price_cents
FROM products WHERE user_id = $1
ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]product.Product, 0, 32)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, userID, id string) (product.Product, error) {
	if err := s.ensureSchema(); err != nil {
		return product.Product{}, err
	}
	row := s.db.QueryRowContext(ctx, `
SELECT id, user_id, name, category, quantity, price_cents
FROM products WHERE user_id = $1 AND id = $2`, strings.TrimSpace(userID), strings.TrimSpace(id))
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return product.Product{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) Put(ctx context.Context, p product.Product) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.UserID) == "" {
		return errors.New("id and user_id are required")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO products (id, user_id, name, category, quantity, price_cents)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (user_id, id)
DO UPDATE SET name=EXCLUDED.name,
  category=EXCLUDED.category,
  quantity=EXCLUDED.quantity,
  price_cents=EXCLUDED.price_cents`,
		p.ID, p.UserID, p.Name, p.Category, p.Quantity, int64(p.Price))
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, userID, id string) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
DELETE FROM products WHERE user_id = $1 AND id = $2`,
		strings.TrimSpace(userID), strings.TrimSpace(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
