package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/rl1809/cart-store/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		price DOUBLE NOT NULL,
		image VARCHAR(1024) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS stock (
		product_id INT PRIMARY KEY,
		amount INT NOT NULL DEFAULT 0
	)`,
}

// SeedData has the shape of the storefront's fake API fixture.
type SeedData struct {
	Products []domain.Product `json:"products"`
	Stock    []domain.Stock   `json:"stock"`
}

// ParseSeed decodes a fixture document.
func ParseSeed(r io.Reader) (SeedData, error) {
	var data SeedData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return SeedData{}, fmt.Errorf("decode seed: %w", err)
	}
	return data, nil
}

type MySQLAdapter struct {
	db *sqlx.DB
}

func NewMySQLAdapter(db *sqlx.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// Migrate creates the catalog tables when they are missing.
func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Seed upserts products and stock rows in one transaction.
func (m *MySQLAdapter) Seed(ctx context.Context, data SeedData) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, p := range data.Products {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO products (id, title, price, image)
			VALUES (:id, :title, :price, :image)
			ON DUPLICATE KEY UPDATE title = VALUES(title), price = VALUES(price), image = VALUES(image)`, p)
		if err != nil {
			return fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
	}

	for _, s := range data.Stock {
		if s.Amount < 0 {
			return fmt.Errorf("stock for product %d is negative", s.ID)
		}
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO stock (product_id, amount)
			VALUES (:product_id, :amount)
			ON DUPLICATE KEY UPDATE amount = VALUES(amount)`, s)
		if err != nil {
			return fmt.Errorf("upsert stock %d: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	var p domain.Product
	err := m.db.GetContext(ctx, &p, `SELECT id, title, price, image FROM products WHERE id = ?`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m *MySQLAdapter) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	var s domain.Stock
	err := m.db.GetContext(ctx, &s, `SELECT product_id, amount FROM stock WHERE product_id = ?`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	return &s, nil
}

func (m *MySQLAdapter) ListStock(ctx context.Context) ([]domain.Stock, error) {
	var rows []domain.Stock
	if err := m.db.SelectContext(ctx, &rows, `SELECT product_id, amount FROM stock ORDER BY product_id`); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return rows, nil
}
