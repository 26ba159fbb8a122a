package container

import (
	"context"
	"errors"
	"strings"
	"testing"

	"billed/internal/mocks"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardHarness(t *testing.T) (*Dashboard, *mocks.BillStore) {
	t.Helper()
	renderer, err := view.NewRenderer(zerolog.Nop())
	require.NoError(t, err)
	billStore := mocks.NewBillStore(fixtureBills()...)
	return NewDashboard(Context{Store: billStore, Renderer: renderer, Log: zerolog.Nop()}), billStore
}

func TestDashboard_Render(t *testing.T) {
	dashboard, _ := newDashboardHarness(t)

	body := dashboard.Render(context.Background())

	assert.Contains(t, body, `data-testid="dashboard-tbody"`)
	assert.Equal(t, 4, strings.Count(body, "employee@test.tld"))
	assert.Contains(t, body, "En attente")
}

func TestDashboard_Render_StoreFailure(t *testing.T) {
	dashboard, billStore := newDashboardHarness(t)
	billStore.ListErr = &store.StatusError{Code: 500, Err: errors.New("boom")}

	body := dashboard.Render(context.Background())

	assert.Contains(t, body, `data-testid="error-message"`)
	assert.Contains(t, body, "Erreur")
}
