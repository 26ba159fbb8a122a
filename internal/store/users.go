package store

import (
	"context"
	"errors"
	"fmt"

	"billed/internal/model"

	"github.com/jackc/pgx/v5"
)

// Users defines operations for account data
type Users interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userStore struct {
	db DB
}

// NewUserStore creates a Users store backed by PostgreSQL
func NewUserStore(db DB) Users {
	return &userStore{db: db}
}

// Create inserts a new user into the database
func (s *userStore) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, password_hash, type, created_at)
	        VALUES ($1, $2, $3, $4) RETURNING id`
	err := s.db.QueryRow(ctx, sql, user.Email, user.PasswordHash, user.Type, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email. A missing user is (nil, nil); the
// caller decides whether that is an error.
func (s *userStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, email, password_hash, type, created_at FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, sql, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Type, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}
