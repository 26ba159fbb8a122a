package container

import (
	"context"
	"errors"
	"strings"
	"testing"

	"billed/internal/mocks"
	"billed/internal/model"
	"billed/internal/nav"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fixtureBills() []model.Bill {
	return []model.Bill{
		{
			ID: "47qAXb6fIm2zOKkLzMro", Email: "employee@test.tld", Type: "Hôtel et logement",
			Name: "encore", Amount: 400, Date: "2004-04-04", VAT: "80", Pct: 20,
			Status: model.StatusPending, FileURL: strPtr("/files/abc/preview-facture.jpg"),
			FileName: strPtr("preview-facture.jpg"),
		},
		{
			ID: "BeKy5Mo4jkmdfPGYpTxZ", Email: "employee@test.tld", Type: "Transports",
			Name: "test1", Amount: 100, Date: "2001-01-01", VAT: "", Pct: 20,
			Status: model.StatusRefused,
		},
		{
			ID: "UIUZtnPQvnbFnB0ozvJh", Email: "employee@test.tld", Type: "Services en ligne",
			Name: "test3", Amount: 300, Date: "2003-03-03", VAT: "60", Pct: 20,
			Status: model.StatusAccepted,
		},
		{
			ID: "qcCK3SzECmaZAGRrHjaC", Email: "employee@test.tld", Type: "Restaurants",
			Name: "test2", Amount: 200, Date: "2002-02-02", VAT: "40", Pct: 20,
			Status: model.StatusRefused,
		},
	}
}

type billsHarness struct {
	list      *BillsList
	store     *mocks.BillStore
	navigated []string
	current   string
}

func newBillsHarness(t *testing.T, bills ...model.Bill) *billsHarness {
	t.Helper()
	renderer, err := view.NewRenderer(zerolog.Nop())
	require.NoError(t, err)

	sess := session.NewManager(session.NewMemoryStorage())
	require.NoError(t, sess.SetUser(model.Session{Type: model.RoleEmployee, Email: "employee@test.tld"}))

	h := &billsHarness{store: mocks.NewBillStore(bills...), current: nav.PathBills}
	h.list = NewBillsList(Context{
		Store:    h.store,
		Session:  sess,
		Renderer: renderer,
		Navigate: func(_ context.Context, path string) { h.navigated = append(h.navigated, path) },
		Current:  func() string { return h.current },
		Log:      zerolog.Nop(),
	})
	return h
}

func TestBillsList_GetBills_Antichronological(t *testing.T) {
	h := newBillsHarness(t, fixtureBills()...)

	bills, err := h.list.GetBills(context.Background())

	require.NoError(t, err)
	require.Len(t, bills, 4)
	dates := []string{bills[0].Date, bills[1].Date, bills[2].Date, bills[3].Date}
	assert.Equal(t, []string{"2004-04-04", "2003-03-03", "2002-02-02", "2001-01-01"}, dates)
	assert.Equal(t, "4 Avr. 04", bills[0].FormattedDate)
	assert.Equal(t, "En attente", bills[0].StatusLabel)
	assert.Equal(t, "Refusé", bills[3].StatusLabel)
}

func TestBillsList_GetBills_TiesKeepFetchOrder(t *testing.T) {
	h := newBillsHarness(t,
		model.Bill{ID: "a", Name: "first", Date: "2004-04-04", Status: model.StatusPending},
		model.Bill{ID: "b", Name: "second", Date: "2004-04-04", Status: model.StatusPending},
	)

	bills, err := h.list.GetBills(context.Background())

	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "first", bills[0].Name)
	assert.Equal(t, "second", bills[1].Name)
}

func TestBillsList_GetBills_MalformedDateSortsLast(t *testing.T) {
	bills := fixtureBills()
	bills[0].Date = "2004-04-045" // corrupted, cannot be parsed
	h := newBillsHarness(t, bills...)

	out, err := h.list.GetBills(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 4)
	last := out[3]
	assert.Equal(t, "encore", last.Name)
	// Displayed as-is rather than dropped
	assert.Equal(t, "2004-04-045", last.FormattedDate)
}

func TestBillsList_GetBills_StoreError(t *testing.T) {
	h := newBillsHarness(t)
	h.store.ListErr = &store.StatusError{Code: 404, Err: errors.New("no rows")}

	_, err := h.list.GetBills(context.Background())

	require.Error(t, err)
	var statusErr *store.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.Code)
}

func TestBillsList_Render(t *testing.T) {
	h := newBillsHarness(t, fixtureBills()...)

	body := h.list.Render(context.Background())

	assert.Contains(t, body, `data-testid="tbody"`)
	assert.Contains(t, body, `data-testid="btn-new-bill"`)
	assert.Equal(t, 4, strings.Count(body, `data-testid="bill-name"`))
	assert.Contains(t, body, "encore")
	// The window icon is highlighted on the bills route
	assert.Contains(t, body, `data-testid="icon-window" class="layout-icon active-icon"`)
	assert.Contains(t, body, `data-testid="icon-mail" class="layout-icon"`)
	// Overlay starts hidden
	assert.Contains(t, body, `style="display: none;"`)
}

func TestBillsList_Render_StoreFailureShowsErrorView(t *testing.T) {
	h := newBillsHarness(t)
	h.store.ListErr = &store.StatusError{Code: 500, Err: errors.New("boom")}

	body := h.list.Render(context.Background())

	assert.Contains(t, body, `data-testid="error-message"`)
	assert.Contains(t, body, "Erreur")
	// The status code stays out of the page
	assert.NotContains(t, body, "500")
}

func TestBillsList_Render_DiscardsStaleResponse(t *testing.T) {
	h := newBillsHarness(t, fixtureBills()...)
	first := h.list.Render(context.Background())

	// The user moves off the listing while the next fetch is in flight
	h.store.Bills = append(h.store.Bills, model.Bill{ID: "z", Name: "late", Date: "2005-05-05"})
	h.store.OnList = func() { h.current = nav.PathNewBill }

	second := h.list.Render(context.Background())

	assert.Equal(t, first, second)
	assert.NotContains(t, second, "late")
}

func TestBillsList_Render_StaleFirstResponse(t *testing.T) {
	h := newBillsHarness(t, fixtureBills()...)
	// The route changed before anything was ever rendered
	h.store.OnList = func() { h.current = nav.PathNewBill }

	body := h.list.Render(context.Background())

	assert.NotEmpty(t, body)
	assert.Contains(t, body, `data-testid="error-message"`)
}

func TestBillsList_HandleClickNewBill_Detached(t *testing.T) {
	h := newBillsHarness(t)

	// Passed around as a bare handler, the method keeps its receiver
	click := h.list.HandleClickNewBill
	click()

	assert.Equal(t, []string{nav.PathNewBill}, h.navigated)
}

func TestBillsList_HandleClickIconEye(t *testing.T) {
	h := newBillsHarness(t, fixtureBills()...)

	h.list.HandleClickIconEye(EyeIcon{BillURL: "/files/abc/preview-facture.jpg"})()

	modal := h.list.Modal()
	assert.True(t, modal.Open)
	assert.Equal(t, "/files/abc/preview-facture.jpg", modal.URL)

	body := h.list.Render(context.Background())
	assert.Contains(t, body, `style="display: block;"`)
	assert.Contains(t, body, `src="/files/abc/preview-facture.jpg"`)

	h.list.CloseModal()
	assert.False(t, h.list.Modal().Open)
	body = h.list.Render(context.Background())
	assert.Contains(t, body, `style="display: none;"`)
}

func TestBillsList_HandleClickIconEye_MissingURL(t *testing.T) {
	h := newBillsHarness(t)

	h.list.HandleClickIconEye(EyeIcon{FileName: "some/dir/justificatif.png"})()

	modal := h.list.Modal()
	assert.True(t, modal.Open)
	assert.Equal(t, "/files/justificatif.png", modal.URL)
}
