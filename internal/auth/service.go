package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"billed/internal/model"
	"billed/internal/store"

	"github.com/rs/zerolog"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service provides login and registration over the user store
type Service struct {
	users store.Users
	codec *TokenCodec
	log   zerolog.Logger
}

// NewService creates an auth Service
func NewService(users store.Users, codec *TokenCodec, log zerolog.Logger) *Service {
	return &Service{users: users, codec: codec, log: log}
}

// Register creates an account and returns it with a signed session token.
// Accounts default to the Employee type; the address named by
// INITIAL_ADMIN_EMAIL becomes an Admin.
func (s *Service) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUserAlreadyExists
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userType := model.RoleEmployee
	if admin := os.Getenv("INITIAL_ADMIN_EMAIL"); admin != "" && email == admin {
		userType = model.RoleAdmin
		s.log.Info().Str("email", email).Msg("registering initial admin account")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Type:         userType,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.codec.Generate(user.Type, user.Email)
	if err != nil {
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and returns a signed session token
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.codec.Generate(user.Type, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}
