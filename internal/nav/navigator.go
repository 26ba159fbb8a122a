// Package nav implements the hash-path-to-view resolution state machine.
package nav

import (
	"context"

	"billed/internal/session"

	"github.com/rs/zerolog"
)

// Route paths. The table is static configuration; routes are never added at
// runtime once a client is wired.
const (
	PathLogin     = "/"
	PathBills     = "#employee/bills"
	PathNewBill   = "#employee/bill/new"
	PathDashboard = "#admin/dashboard"
	PathAdminBill = "#admin/bill"
)

// Route maps a path to a render function. Role, when set, restricts the route
// to sessions of that type.
type Route struct {
	Path   string
	Role   string
	Render func(ctx context.Context) string
}

// Navigator owns the currently active route and the rendered body. One
// instance per client; containers reach it through the app context they were
// constructed with, never through package globals.
type Navigator struct {
	session     *session.Manager
	log         zerolog.Logger
	routes      map[string]Route
	fallback    string
	renderError func(message string) string
	location    string
	body        string
	subs        map[int]func(path string)
	nextSub     int
}

// New creates a Navigator. renderError produces the view shown when a
// role-restricted route is hit without the matching session.
func New(sess *session.Manager, renderError func(string) string, log zerolog.Logger) *Navigator {
	return &Navigator{
		session:     sess,
		log:         log,
		routes:      make(map[string]Route),
		fallback:    PathLogin,
		renderError: renderError,
		subs:        make(map[int]func(string)),
	}
}

// Register adds a route to the table
func (n *Navigator) Register(r Route) {
	n.routes[r.Path] = r
}

// Navigate sets the current location to path, resolves it against the route
// table and replaces the body with the matching render output. Unknown paths
// fall back to the login route. Calling Navigate twice with the same path
// yields the same rendered state.
func (n *Navigator) Navigate(ctx context.Context, path string) {
	route, ok := n.routes[path]
	if !ok {
		n.log.Warn().Str("path", path).Msg("unknown route, falling back to login")
		path = n.fallback
		route = n.routes[n.fallback]
	}
	n.location = path

	// Role guard: restricted content is never rendered on a mismatch
	if route.Role != "" {
		user, err := n.session.User()
		if err != nil || user.Type != route.Role {
			n.log.Warn().Str("path", path).Err(err).Msg("role guard rejected navigation")
			n.body = n.renderError("")
			n.notify(path)
			return
		}
	}

	if route.Render == nil {
		n.body = n.renderError("")
	} else {
		n.body = route.Render(ctx)
	}
	n.notify(path)
}

// OnLocationChange runs the same resolution as Navigate, so external location
// edits and programmatic navigation stay consistent.
func (n *Navigator) OnLocationChange(ctx context.Context, path string) {
	n.Navigate(ctx, path)
}

// Current returns the active route path
func (n *Navigator) Current() string {
	return n.location
}

// Body returns the markup rendered for the active route
func (n *Navigator) Body() string {
	return n.body
}

// Subscription is a registered location listener with a teardown path
type Subscription struct {
	nav *Navigator
	id  int
}

// Unsubscribe detaches the listener. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	delete(s.nav.subs, s.id)
}

// Subscribe registers fn to run after every resolved navigation
func (n *Navigator) Subscribe(fn func(path string)) *Subscription {
	n.nextSub++
	id := n.nextSub
	n.subs[id] = fn
	return &Subscription{nav: n, id: id}
}

func (n *Navigator) notify(path string) {
	for _, fn := range n.subs {
		fn(path)
	}
}
