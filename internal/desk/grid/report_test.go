package grid_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/grid"
	"github.com/rsankarapandian/stores-backoffice/internal/interfaces/http/apitest"
)

func TestReport_LoadFilterAndTotals(t *testing.T) {
	srv := apitest.New(t)
	client := apiclient.New("http://desk.test/api", srv.Client(), 0, zerolog.Nop())
	client.SetToken(srv.Token)

	r := grid.NewReport(client, "sales", "Sales Register", zerolog.Nop())
	require.True(t, r.Load(context.Background()), r.Err)

	rows := r.Grid.Displayed()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"04-04-2026", "S-0001", "Murugan Traders", "12", "14500", "2610"}, rows[0])

	require.NoError(t, r.Grid.Filter("2026-04-05", "2026-04-09"))
	require.Len(t, r.Grid.Displayed(), 2)
	totals := r.Grid.Totals()
	assert.True(t, decimal.NewFromInt(7230).Equal(totals["amount"]), totals["amount"].String())
	assert.True(t, decimal.NewFromInt(7).Equal(totals["quantity"]))
	assert.True(t, decimal.RequireFromString("1301.4").Equal(totals["tax"]))

	pdf, err := r.PDF(context.Background(), "2026-04-05", "2026-04-09")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestReport_LoadFailures(t *testing.T) {
	offline := apiclient.New("http://desk.test/api", &http.Client{Transport: failingTransport{}}, 0, zerolog.Nop())
	r := grid.NewReport(offline, "sales", "Sales Register", zerolog.Nop())
	assert.False(t, r.Load(context.Background()))
	assert.Equal(t, "No response received from server.", r.Err)
	assert.Empty(t, r.Grid.Displayed())

	srv := apitest.New(t)
	client := apiclient.New("http://desk.test/api", srv.Client(), 0, zerolog.Nop())
	client.SetToken(srv.Token)
	unknown := grid.NewReport(client, "stock", "Stock Register", zerolog.Nop())
	assert.False(t, unknown.Load(context.Background()))
	assert.Equal(t, "Could not load Stock Register.", unknown.Err)
}
