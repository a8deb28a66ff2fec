// Package apitest runs the back office API in process over the memory store.
// Tests reach it through fiber's app.Test, either directly or as an http.RoundTripper.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/application/auth"
	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/cache"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/memory"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/pdf"
	apphttp "github.com/rsankarapandian/stores-backoffice/internal/interfaces/http"
)

// Credentials of the bootstrap admin.
const (
	AdminUser     = "admin"
	AdminPassword = "admin123"
	JWTSecret     = "apitest-secret"
)

// Server an in-process API with a logged in admin.
type Server struct {
	App   *fiber.App
	Store *memory.Store
	Auth  *auth.AuthUseCase
	Token string
}

// Now anchors the seeded register rows.
var Now = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

// New builds the API over a seeded memory store and logs the admin in.
func New(t testing.TB) *Server {
	t.Helper()
	store := memory.New()
	store.SeedSamples(Now)

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: JWTSecret, ExpMinutes: 60, Issuer: "apitest"})
	_, err := authUC.EnsureAdmin(context.Background(), AdminUser, AdminPassword)
	require.NoError(t, err)

	app := apphttp.NewApp("apitest", apphttp.RouterDeps{
		MasterUC:  usecase.NewMasterUseCase(store.Masters()),
		ItemUC:    usecase.NewItemUseCase(store.Items(), store.Masters(), store.Groups(), "RSP"),
		LedgerUC:  usecase.NewLedgerUseCase(store.Ledgers(), store.Masters(), store.Groups()),
		GroupUC:   usecase.NewGroupUseCase(store.Groups(), cache.NoopGroupTreeCache{}, time.Minute, zerolog.Nop()),
		ReportUC:  usecase.NewReportUseCase(store.Registers(), pdf.NewRegisterPDFGenerator("R Sankarapandian Stores")),
		AuthUC:    authUC,
		JWTSecret: JWTSecret,
	})

	login, err := authUC.Login(context.Background(), dto.LoginRequest{Username: AdminUser, Password: AdminPassword})
	require.NoError(t, err)
	return &Server{App: app, Store: store, Auth: authUC, Token: login.Token}
}

// Transport dispatches http.Client requests into the fiber app.
func (s *Server) Transport() http.RoundTripper {
	return transport{app: s.App}
}

type transport struct {
	app *fiber.App
}

func (tr transport) RoundTrip(req *http.Request) (*http.Response, error) {
	return tr.app.Test(req, -1)
}

// Client is an http.Client wired to Transport.
func (s *Server) Client() *http.Client {
	return &http.Client{Transport: s.Transport()}
}

// Do sends a JSON request as the admin and returns the response.
func (s *Server) Do(t testing.TB, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)
	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Decode reads a JSON body into out and closes it.
func Decode(t testing.TB, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
