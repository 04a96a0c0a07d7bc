package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/security"
)

// EnsureAdminUser bootstraps the admin account from config at startup.
// A no-op when credentials are unset or the account already exists.
func (s *Store) EnsureAdminUser(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.CreateUser(ctx, &user.User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Password:   hash,
		Role:       user.RoleAdmin,
		Status:     true,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}
