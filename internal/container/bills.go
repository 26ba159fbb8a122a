package container

import (
	"context"
	"fmt"
	"path"
	"sort"
	"time"

	"billed/internal/model"
	"billed/internal/nav"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/rs/zerolog"
)

// BillsList fetches, orders and formats the current user's bills and owns the
// attachment overlay state. The store it receives is already scoped to the
// session email.
type BillsList struct {
	store    store.Bills
	renderer *view.Renderer
	navigate func(ctx context.Context, path string)
	current  func() string
	log      zerolog.Logger

	modal    view.Modal
	lastView string
}

// NewBillsList creates a BillsList container
func NewBillsList(c Context) *BillsList {
	return &BillsList{
		store:    c.Store,
		renderer: c.Renderer,
		navigate: c.Navigate,
		current:  c.Current,
		log:      c.Log,
	}
}

// GetBills lists the user's bills as DisplayBills, sorted by underlying date
// descending. Ties keep fetch order; entries whose date fails to parse sort
// last. The formatted date is presentation only, never a sort key.
func (b *BillsList) GetBills(ctx context.Context) ([]model.DisplayBill, error) {
	raw, err := b.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	display := make([]model.DisplayBill, 0, len(raw))
	for _, bill := range raw {
		formatted, ok := model.FormatDate(bill.Date)
		if !ok {
			b.log.Warn().Str("bill", bill.ID).Str("date", bill.Date).
				Msg("unparsable bill date, displaying raw value")
		}
		display = append(display, model.DisplayBill{
			Bill:          bill,
			FormattedDate: formatted,
			StatusLabel:   model.StatusLabel(bill.Status),
		})
	}

	sort.SliceStable(display, func(i, j int) bool {
		di, iok := parseISODate(display[i].Date)
		dj, jok := parseISODate(display[j].Date)
		if iok != jok {
			return iok // parsable entries before unparsable ones
		}
		if !iok {
			return false
		}
		return di.After(dj) // antichronological
	})
	return display, nil
}

func parseISODate(iso string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", iso)
	return t, err == nil
}

// Render produces the listing markup. Every store failure is caught here and
// converted to the visible error view; the status stays in the logs only. A
// response arriving after the navigator moved off the bills route leaves the
// displayed state untouched.
func (b *BillsList) Render(ctx context.Context) string {
	bills, err := b.GetBills(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("fetching bills failed")
		return b.renderer.Error("")
	}
	if b.current != nil && b.current() != nav.PathBills {
		b.log.Warn().Str("current", b.current()).Msg("discarding stale bills response")
		if b.lastView == "" {
			return b.renderer.Error("")
		}
		return b.lastView
	}
	b.lastView = b.renderer.Bills(view.BillsData{Bills: bills, Modal: b.modal})
	return b.lastView
}

// HandleClickNewBill navigates to the new-bill form. Usable as a detached
// handler: the method value keeps its receiver.
func (b *BillsList) HandleClickNewBill() {
	b.navigate(context.Background(), nav.PathNewBill)
}

// EyeIcon mirrors the attributes carried by a rendered eye icon
type EyeIcon struct {
	BillURL  string // data-bill-url attribute
	FileName string
}

// HandleClickIconEye returns the click handler for an eye icon. It opens the
// overlay on the icon's bill URL; when the URL is missing it falls back to a
// path built from the file name segment instead of crashing.
func (b *BillsList) HandleClickIconEye(icon EyeIcon) func() {
	return func() {
		url := icon.BillURL
		if url == "" {
			url = "/files/" + path.Base(icon.FileName)
		}
		b.modal = view.Modal{Open: true, URL: url}
	}
}

// CloseModal hides the attachment overlay
func (b *BillsList) CloseModal() {
	b.modal = view.Modal{}
}

// Modal exposes the overlay state
func (b *BillsList) Modal() view.Modal {
	return b.modal
}
