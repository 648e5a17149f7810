package repository

import (
	"context"

	"AgroShopAPI/internal/model"
)

type AdminRepository struct {
	DB DB
}

func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	query := `SELECT id, username, password FROM admin WHERE username=$1`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash); err != nil {
		return nil, noRecord(err)
	}
	return &a, nil
}
