package handler

import (
	"context"

	"billed/internal/container"
	"billed/internal/model"
	"billed/internal/nav"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/rs/zerolog"
)

// client bundles the per-request view state machine: session manager,
// navigator and containers, wired the way the browser core wires them once
// per process.
type client struct {
	sess    *session.Manager
	nav     *nav.Navigator
	bills   *container.BillsList
	newBill *container.NewBill
	logout  *container.Logout
}

// newClient wires a client over the given storage. The employee containers
// see a store scoped to the session email; the admin dashboard sees the whole
// collection.
func newClient(storage session.Storage, bills store.Scoper, renderer *view.Renderer, log zerolog.Logger) *client {
	sess := session.NewManager(storage)
	navigator := nav.New(sess, renderer.Error, log)

	email := ""
	if user, err := sess.User(); err == nil {
		email = user.Email
	}

	cctx := container.Context{
		Store:    bills.ForUser(email),
		Session:  sess,
		Renderer: renderer,
		Navigate: navigator.Navigate,
		Current:  navigator.Current,
		Log:      log,
	}
	billsList := container.NewBillsList(cctx)
	newBill := container.NewNewBill(cctx)
	logout := container.NewLogout(cctx)

	adminCtx := cctx
	adminCtx.Store = bills
	dashboard := container.NewDashboard(adminCtx)

	navigator.Register(nav.Route{Path: nav.PathLogin, Render: func(context.Context) string { return renderer.Login() }})
	navigator.Register(nav.Route{Path: nav.PathBills, Role: model.RoleEmployee, Render: billsList.Render})
	navigator.Register(nav.Route{Path: nav.PathNewBill, Role: model.RoleEmployee, Render: newBill.Render})
	navigator.Register(nav.Route{Path: nav.PathDashboard, Role: model.RoleAdmin, Render: dashboard.Render})
	navigator.Register(nav.Route{Path: nav.PathAdminBill, Role: model.RoleAdmin, Render: dashboard.Render})

	return &client{
		sess:    sess,
		nav:     navigator,
		bills:   billsList,
		newBill: newBill,
		logout:  logout,
	}
}
