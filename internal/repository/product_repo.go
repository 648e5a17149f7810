package repository

import (
	"context"

	"AgroShopAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ProductRepository struct {
	DB DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, name string, price decimal.Decimal) (int64, error) {
	var id int64
	query := `INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, name, price).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := `SELECT id, name, price FROM products WHERE id=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price); err != nil {
		return nil, noRecord(err)
	}
	return &p, nil
}

// GetByIDTx reads a product inside the checkout transaction.
func (r *ProductRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error) {
	var p model.Product
	query := `SELECT id, name, price FROM products WHERE id=$1`
	if err := tx.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price); err != nil {
		return nil, noRecord(err)
	}
	return &p, nil
}

// GetByIDs returns the products that still exist, keyed by id. Missing ids are
// simply absent from the map.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	out := make(map[int64]model.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT id, name, price FROM products WHERE id = ANY($1)`
	rows, err := r.DB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT id, name, price FROM products ORDER BY id`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET name=$1, price=$2 WHERE id=$3`
	tag, err := r.DB.Exec(ctx, query, p.Name, p.Price, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRecord
	}
	return nil
}

// Delete removes the row and reports whether anything was there.
// order_items keep their own copy of name/price and are not touched.
func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM products WHERE id=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
