package session_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/session"
	"github.com/rsankarapandian/stores-backoffice/internal/interfaces/http/apitest"
)

var ctx = context.Background()

func newProvider(t *testing.T) (*session.APIProvider, *apiclient.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	client := apiclient.New("http://desk.test/api", srv.Client(), 0, zerolog.Nop())
	return session.NewAPIProvider(client, zerolog.Nop()), client, srv
}

func TestAPIProvider_LoginFeedsClient(t *testing.T) {
	p, client, _ := newProvider(t)
	assert.Nil(t, p.Current())

	_, err := client.GroupTree(ctx)
	require.Error(t, err, "no token yet")

	require.NoError(t, p.Login(ctx, " admin ", apitest.AdminPassword))
	u := p.Current()
	require.NotNil(t, u)
	assert.Equal(t, "admin", u.Username)
	assert.True(t, u.IsAdmin())
	assert.NotEmpty(t, client.Token())

	_, err = client.GroupTree(ctx)
	assert.NoError(t, err)

	p.Logout()
	assert.Nil(t, p.Current())
	assert.Empty(t, client.Token())
}

func TestAPIProvider_BadCredentials(t *testing.T) {
	p, client, _ := newProvider(t)
	assert.ErrorIs(t, p.Login(ctx, "admin", "wrong"), session.ErrBadCredentials)
	assert.ErrorIs(t, p.Login(ctx, "", "x"), session.ErrBadCredentials)
	assert.Nil(t, p.Current())
	assert.Empty(t, client.Token())
}

func TestAPIProvider_Restore(t *testing.T) {
	p, client, srv := newProvider(t)
	require.True(t, p.Restore(ctx, srv.Token))
	assert.Equal(t, "admin", p.Current().Username)

	assert.False(t, p.Restore(ctx, "not-a-token"))
	assert.Nil(t, p.Current())
	assert.Empty(t, client.Token())
}

type fixed struct{ user *session.User }

func (f fixed) Current() *session.User                    { return f.user }
func (fixed) Login(context.Context, string, string) error { return nil }
func (fixed) Logout()                                     {}

func TestResolve_Gate(t *testing.T) {
	out := fixed{}
	in := fixed{user: &session.User{Username: "kumar", Role: "clerk"}}

	tests := []struct {
		name     string
		path     string
		p        session.Provider
		redirect string
		kind     session.PageKind
		notFound bool
	}{
		{"signed out page", "/masters/brand", out, "/login", 0, false},
		{"signed out unknown", "/nowhere", out, "/login", 0, false},
		{"nil provider", "/reports/day-book", nil, "/login", 0, false},
		{"signed out login", "/login", out, "", session.PageLogin, false},
		{"signed in login", "/login", in, "/", 0, false},
		{"master", "/masters/brand", in, "", session.PageMaster, false},
		{"trailing slash and query", "/Masters/Ledger-Creation/?x=1", in, "", session.PageLedger, false},
		{"transaction", "/transactions/sales-return", in, "", session.PageTransaction, false},
		{"report", "/reports/day-book", in, "", session.PageReport, false},
		{"home", "", in, "", session.PageHome, false},
		{"unknown", "/reports/stock", in, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := session.Resolve(tt.path, tt.p)
			assert.Equal(t, tt.redirect, res.Redirect)
			assert.Equal(t, tt.notFound, res.NotFound)
			if tt.redirect == "" && !tt.notFound {
				assert.Equal(t, tt.kind, res.Route.Kind)
			}
		})
	}
}

func TestRoutes_Table(t *testing.T) {
	r, ok := session.Lookup("/masters/brand")
	require.True(t, ok)
	assert.Equal(t, apiclient.Brand.Kind, r.Master.Kind)
	assert.Equal(t, "Brand", r.Title)

	r, ok = session.Lookup("/reports/day-book")
	require.True(t, ok)
	assert.Equal(t, "day-book", r.Register)
	assert.Equal(t, "Day Book", r.Title)

	seen := map[string]bool{}
	for _, r := range session.Routes {
		assert.False(t, seen[r.Path], "duplicate route %s", r.Path)
		seen[r.Path] = true
	}
}
