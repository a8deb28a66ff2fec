// Package apiclient is the desk side REST client for the back office API.
// Responses are normalised here into canonical records; pages never see raw JSON.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PageSize rows requested per popup page.
const PageSize = 20

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// APIError is returned for every non-2xx response and every transport failure.
type APIError struct {
	Status     int
	Message    string
	NoResponse bool
}

func (e *APIError) Error() string {
	if e.NoResponse {
		return "apiclient: no response: " + e.Message
	}
	return fmt.Sprintf("apiclient: HTTP %d: %s", e.Status, e.Message)
}

// Client talks JSON to the API under baseURL (".../api").
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	mu    sync.RWMutex
	token string
}

// New builds a client. A nil hc gets a client with the given timeout.
func New(baseURL string, hc *http.Client, timeout time.Duration, log zerolog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc, log: log}
}

// SetToken sets the bearer token sent with every request. Empty clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do sends body as JSON and decodes a 2xx response into out (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.raw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) raw(ctx context.Context, method, path string, body any) ([]byte, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode body: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, &APIError{NoResponse: true, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "read response: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(data, resp.Status)}
	}
	return data, nil
}

// errorMessage extracts the server message from {message} or {error}; falls back to the status text.
func errorMessage(data []byte, status string) string {
	var body map[string]any
	if json.Unmarshal(data, &body) == nil {
		if msg := pick(body, "message", "error", "detail"); msg != "" {
			return msg
		}
	}
	if s := strings.TrimSpace(string(data)); s != "" && len(s) < 200 && !strings.HasPrefix(s, "{") {
		return s
	}
	return status
}
