// Package container holds the data-bound view containers: the bill listing,
// the bill creation form and the logout helper.
package container

import (
	"context"

	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/rs/zerolog"
)

// Context bundles the collaborators every container is constructed with:
// session accessor, record-service handle and navigation callbacks. It is
// passed explicitly so no container depends on hidden global state.
type Context struct {
	Store    store.Bills
	Session  *session.Manager
	Renderer *view.Renderer
	Navigate func(ctx context.Context, path string)
	Current  func() string
	Log      zerolog.Logger
}
