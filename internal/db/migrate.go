package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Execer is the part of pgxpool.Pool the schema bootstrap needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(14,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		total NUMERIC(14,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	// no foreign keys: items carry their own copy of product name and price
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price NUMERIC(14,2) NOT NULL,
		subtotal NUMERIC(14,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_id_idx ON order_items (order_id)`,
	`CREATE TABLE IF NOT EXISTS admin (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
}

const (
	DefaultAdminUser     = "admin"
	DefaultAdminPassword = "1234"
)

type seedProduct struct {
	name  string
	price int64
}

var demoProducts = []seedProduct{
	{"Sabzi", 12000},
	{"Kartoshka", 10000},
	{"Qovun", 10050},
	{"Kalbasa", 10022},
	{"Tarvuz", 10031},
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db Execer) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Seed inserts the default admin and the demo products, each only when the
// respective table is still empty.
func Seed(ctx context.Context, db Execer) error {
	var admins int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM admin`).Scan(&admins); err != nil {
		return fmt.Errorf("count admin: %w", err)
	}
	if admins == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, `INSERT INTO admin (username, password) VALUES ($1, $2)`, DefaultAdminUser, string(hash)); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	var products int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&products); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if products == 0 {
		for _, p := range demoProducts {
			if _, err := db.Exec(ctx, `INSERT INTO products (name, price) VALUES ($1, $2)`, p.name, decimal.NewFromInt(p.price)); err != nil {
				return fmt.Errorf("seed product %s: %w", p.name, err)
			}
		}
	}
	return nil
}
