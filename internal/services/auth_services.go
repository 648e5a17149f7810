package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"AgroShopAPI/internal/model"
	"AgroShopAPI/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Admins *repository.AdminRepository
}

func NewAuthService(r *repository.AdminRepository) *AuthService {
	return &AuthService{Admins: r}
}

// Login checks username and password against the admin table and returns the
// admin without its hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	a, err := s.Admins.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNoRecord) {
		// do not reveal whether the username exists
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	a.PasswordHash = ""
	return a, nil
}
