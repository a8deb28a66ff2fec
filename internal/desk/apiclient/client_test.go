package apiclient_test

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
	"github.com/rsankarapandian/stores-backoffice/internal/interfaces/http/apitest"
)

var ctx = context.Background()

func newClient(t *testing.T) (*apiclient.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	c := apiclient.New("http://desk.test/api", srv.Client(), 0, zerolog.Nop())
	c.SetToken(srv.Token)
	return c, srv
}

func apiErr(t *testing.T, err error) *apiclient.APIError {
	t.Helper()
	var ae *apiclient.APIError
	require.True(t, errors.As(err, &ae), "expected APIError, got %v", err)
	return ae
}

func TestClient_MasterRoundTrip(t *testing.T) {
	c, _ := newClient(t)

	code, err := c.NextCode(ctx, apiclient.Brand)
	require.NoError(t, err)
	assert.Equal(t, "0001", code)

	require.NoError(t, c.CreateRecord(ctx, apiclient.Brand, apiclient.Record{Code: code, Name: "Acme"}))
	list, err := c.ListRecords(ctx, apiclient.Brand, "", 1)
	require.NoError(t, err)
	assert.Equal(t, []apiclient.Record{{Code: "0001", Name: "Acme"}}, list)

	next, err := c.NextCode(ctx, apiclient.Brand)
	require.NoError(t, err)
	assert.Equal(t, "0002", next)

	require.NoError(t, c.UpdateRecord(ctx, apiclient.Brand, apiclient.Record{Code: "0001", Name: "Acme Steel"}))
	list, err = c.ListRecords(ctx, apiclient.Brand, "steel", 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Steel", list[0].Name)

	require.NoError(t, c.DeleteByCode(ctx, apiclient.Brand, "0001"))
	list, err = c.ListRecords(ctx, apiclient.Brand, "", 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_ListAllRecordsWalksPages(t *testing.T) {
	c, _ := newClient(t)
	for i := 0; i < apiclient.PageSize+3; i++ {
		require.NoError(t, c.CreateRecord(ctx, apiclient.Size, apiclient.Record{Name: "Size " + string(rune('A'+i))}))
	}
	all, err := c.ListAllRecords(ctx, apiclient.Size)
	require.NoError(t, err)
	assert.Len(t, all, apiclient.PageSize+3)

	second, err := c.ListRecords(ctx, apiclient.Size, "", 2)
	require.NoError(t, err)
	assert.Len(t, second, 3)
}

func TestClient_ErrorsCarryStatusAndMessage(t *testing.T) {
	c, _ := newClient(t)
	require.NoError(t, c.CreateRecord(ctx, apiclient.Category, apiclient.Record{Name: "Vessels"}))

	err := c.CreateRecord(ctx, apiclient.Category, apiclient.Record{Name: "vessels"})
	ae := apiErr(t, err)
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, `Category name "Vessels" already exists`, ae.Message)
	assert.False(t, ae.NoResponse)

	ae = apiErr(t, c.DeleteByCode(ctx, apiclient.Category, "0099"))
	assert.Equal(t, http.StatusNotFound, ae.Status)

	c.SetToken("")
	_, err = c.ListRecords(ctx, apiclient.Category, "", 1)
	assert.Equal(t, http.StatusUnauthorized, apiErr(t, err).Status)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestClient_TransportFailureIsNoResponse(t *testing.T) {
	c := apiclient.New("http://desk.test/api", &http.Client{Transport: failingTransport{}}, 0, zerolog.Nop())
	_, err := c.NextCode(ctx, apiclient.Unit)
	ae := apiErr(t, err)
	assert.True(t, ae.NoResponse)
	assert.Zero(t, ae.Status)
}

func TestClient_ItemsLedgersGroupsReports(t *testing.T) {
	c, _ := newClient(t)
	require.NoError(t, c.CreateRecord(ctx, apiclient.Unit, apiclient.Record{Name: "Nos"}))

	rates, err := c.GSTRates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "5", "12", "18", "28"}, rates)

	prefix, err := c.SuggestPrefix(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RSP", prefix)

	item, err := c.CreateItem(ctx, apiclient.ItemRecord{
		Name: "Steel Tumbler", GroupCode: "020301", UnitCode: "0001", Type: "FG",
		GSTRate:      decimal.NewNullDecimal(decimal.NewFromInt(12)),
		SellingPrice: decimal.RequireFromString("45.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0001", item.Code)
	assert.True(t, item.GSTRate.Valid)
	assert.Equal(t, "12", item.GSTRate.Decimal.String())

	items, err := c.ListItems(ctx, "tumbler", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Steel Tumbler", items[0].Name)
	assert.Equal(t, "45.5", items[0].SellingPrice.String())

	ledger, err := c.CreateLedger(ctx, apiclient.LedgerRecord{Name: "Murugan Traders", GroupCode: "0202", DueDays: 30, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "0001", ledger.Code)
	assert.NotEmpty(t, ledger.DueDate)

	ledgers, err := c.ListLedgers(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, ledgers, 1)
	assert.True(t, ledgers[0].Active)

	tree, err := c.GroupTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 6)
	assert.Equal(t, "Current Assets", tree[1].Name)
	assert.Len(t, tree[1].Children, 3)

	rows, err := c.Register(ctx, "sales", "", "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "04-04-2026", rows[0].Date)

	doc, err := c.RegisterPDF(ctx, "sales", "2026-04-01", "2026-04-10")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestClient_LoginAndMe(t *testing.T) {
	c, _ := newClient(t)
	c.SetToken("")

	res, err := c.Login(ctx, " admin ", apitest.AdminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.User.Username)

	c.SetToken(res.Token)
	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Role)

	_, err = c.Login(ctx, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, apiErr(t, err).Status)
}
