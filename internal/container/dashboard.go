package container

import (
	"context"

	"billed/internal/model"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/rs/zerolog"
)

// Dashboard lists every bill for the admin view. Status changes themselves
// happen elsewhere; this container only reads.
type Dashboard struct {
	store    store.Bills
	renderer *view.Renderer
	log      zerolog.Logger
}

// NewDashboard creates a Dashboard container over an unscoped store
func NewDashboard(c Context) *Dashboard {
	return &Dashboard{store: c.Store, renderer: c.Renderer, log: c.Log}
}

// Render lists all bills; failures render the error view like the employee
// listing does.
func (d *Dashboard) Render(ctx context.Context) string {
	raw, err := d.store.List(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("fetching bills for dashboard failed")
		return d.renderer.Error("")
	}
	display := make([]model.DisplayBill, 0, len(raw))
	for _, bill := range raw {
		formatted, _ := model.FormatDate(bill.Date)
		display = append(display, model.DisplayBill{
			Bill:          bill,
			FormattedDate: formatted,
			StatusLabel:   model.StatusLabel(bill.Status),
		})
	}
	return d.renderer.Dashboard(view.DashboardData{Bills: display})
}
