package container

import (
	"context"

	"billed/internal/nav"
	"billed/internal/session"

	"github.com/rs/zerolog"
)

// Logout clears the session and returns to the login page
type Logout struct {
	session  *session.Manager
	navigate func(ctx context.Context, path string)
	log      zerolog.Logger
}

// NewLogout creates a Logout container
func NewLogout(c Context) *Logout {
	return &Logout{session: c.Session, navigate: c.Navigate, log: c.Log}
}

// HandleClick wipes the session blob entirely and navigates to login. No
// confirmation step; irreversible within the current process.
func (l *Logout) HandleClick(ctx context.Context) {
	l.session.Clear()
	l.navigate(ctx, nav.PathLogin)
}
