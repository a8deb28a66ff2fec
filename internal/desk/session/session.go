// Package session holds the signed in operator and gates desk routes on it.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
)

// ErrBadCredentials is returned by Login when the API rejects the user.
var ErrBadCredentials = errors.New("session: invalid username or password")

// User the operator behind the session.
type User struct {
	ID       string
	Username string
	Name     string
	Role     string
}

// IsAdmin reports the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == "admin" }

// Provider is the auth context pages receive.
type Provider interface {
	Current() *User
	Login(ctx context.Context, username, password string) error
	Logout()
}

// APIProvider logs in through the API and hands the token to the client.
type APIProvider struct {
	client *apiclient.Client
	log    zerolog.Logger

	mu   sync.RWMutex
	user *User
}

var _ Provider = (*APIProvider)(nil)

// NewAPIProvider starts signed out.
func NewAPIProvider(client *apiclient.Client, log zerolog.Logger) *APIProvider {
	return &APIProvider{client: client, log: log.With().Str("component", "session").Logger()}
}

// Current the signed in user, or nil.
func (p *APIProvider) Current() *User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// Login exchanges credentials for a token. A 401 becomes ErrBadCredentials;
// other failures are returned as they come.
func (p *APIProvider) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrBadCredentials
	}
	res, err := p.client.Login(ctx, username, password)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			p.log.Warn().Str("username", username).Msg("login rejected")
			return ErrBadCredentials
		}
		p.log.Error().Err(err).Msg("login failed")
		return err
	}
	p.client.SetToken(res.Token)
	p.set(fromInfo(res.User))
	p.log.Info().Str("username", res.User.Username).Msg("signed in")
	return nil
}

// Restore resumes a session from a saved token; an unusable token signs out.
func (p *APIProvider) Restore(ctx context.Context, token string) bool {
	p.client.SetToken(token)
	info, err := p.client.Me(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("saved session rejected")
		p.Logout()
		return false
	}
	p.set(fromInfo(*info))
	return true
}

// Logout forgets the user and the token.
func (p *APIProvider) Logout() {
	p.client.SetToken("")
	p.set(nil)
}

func (p *APIProvider) set(u *User) {
	p.mu.Lock()
	p.user = u
	p.mu.Unlock()
}

func fromInfo(info apiclient.UserInfo) *User {
	return &User{ID: info.ID, Username: info.Username, Name: info.Name, Role: info.Role}
}
