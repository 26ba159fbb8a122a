package container

import (
	"context"
	"testing"

	"billed/internal/model"
	"billed/internal/nav"
	"billed/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogout_HandleClick(t *testing.T) {
	sess := session.NewManager(session.NewMemoryStorage())
	require.NoError(t, sess.SetUser(model.Session{Type: model.RoleEmployee, Email: "employee@test.tld"}))

	var navigated []string
	logout := NewLogout(Context{
		Session:  sess,
		Navigate: func(_ context.Context, path string) { navigated = append(navigated, path) },
		Log:      zerolog.Nop(),
	})

	logout.HandleClick(context.Background())

	_, err := sess.User()
	assert.ErrorIs(t, err, session.ErrNoSession)
	assert.Equal(t, []string{nav.PathLogin}, navigated)
}
