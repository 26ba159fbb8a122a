package auth

import (
	"context"
	"errors"
	"testing"

	"billed/internal/mocks"
	"billed/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(users *mocks.UserStore) *Service {
	return NewService(users, NewTokenCodec("secret", 1), zerolog.Nop())
}

func TestService_Register(t *testing.T) {
	users := mocks.NewUserStore()
	svc := newTestService(users)

	user, token, err := svc.Register(context.Background(), "employee@test.tld", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.RoleEmployee, user.Type)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotNil(t, users.Users["employee@test.tld"])
}

func TestService_Register_InitialAdmin(t *testing.T) {
	t.Setenv("INITIAL_ADMIN_EMAIL", "admin@test.tld")
	users := mocks.NewUserStore()
	svc := newTestService(users)

	user, _, err := svc.Register(context.Background(), "admin@test.tld", "password123")

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Type)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := mocks.NewUserStore()
	svc := newTestService(users)

	_, _, err := svc.Register(context.Background(), "employee@test.tld", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "employee@test.tld", "otherpassword")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestService_Login(t *testing.T) {
	users := mocks.NewUserStore()
	svc := newTestService(users)
	_, _, err := svc.Register(context.Background(), "employee@test.tld", "password123")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "employee@test.tld", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "employee@test.tld", user.Email)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := mocks.NewUserStore()
	svc := newTestService(users)
	_, _, err := svc.Register(context.Background(), "employee@test.tld", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "employee@test.tld", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownUser(t *testing.T) {
	svc := newTestService(mocks.NewUserStore())

	_, _, err := svc.Login(context.Background(), "nobody@test.tld", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_StoreError(t *testing.T) {
	users := mocks.NewUserStore()
	users.FindErr = errors.New("connection refused")
	svc := newTestService(users)

	_, _, err := svc.Login(context.Background(), "employee@test.tld", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
