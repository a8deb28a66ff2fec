package form_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/form"
	"github.com/rsankarapandian/stores-backoffice/internal/interfaces/http/apitest"
)

var ctx = context.Background()

// countingTransport counts requests per method before passing them on.
type countingTransport struct {
	next http.RoundTripper
	mu   sync.Mutex
	seen map[string]int
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.seen[req.Method]++
	c.mu.Unlock()
	return c.next.RoundTrip(req)
}

func (c *countingTransport) count(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen[method]
}

type recorder struct {
	msgs []form.Message
}

func (r *recorder) Notify(m form.Message) { r.msgs = append(r.msgs, m) }

type desk struct {
	srv      *apitest.Server
	client   *apiclient.Client
	counter  *countingTransport
	notifier *recorder
}

func newDesk(t *testing.T) *desk {
	t.Helper()
	srv := apitest.New(t)
	counter := &countingTransport{next: srv.Transport(), seen: map[string]int{}}
	client := apiclient.New("http://desk.test/api", &http.Client{Transport: counter}, 0, zerolog.Nop())
	client.SetToken(srv.Token)
	return &desk{srv: srv, client: client, counter: counter, notifier: &recorder{}}
}

func (d *desk) master(t *testing.T, ep apiclient.Endpoints, name string) apiclient.Record {
	t.Helper()
	code, err := d.client.NextCode(ctx, ep)
	require.NoError(t, err)
	rec := apiclient.Record{Code: code, Name: name}
	require.NoError(t, d.client.CreateRecord(ctx, ep, rec))
	return rec
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func offlineClient() *apiclient.Client {
	return apiclient.New("http://desk.test/api", &http.Client{Transport: failingTransport{}}, 0, zerolog.Nop())
}
