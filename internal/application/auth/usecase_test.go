package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/application/auth"
	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/memory"
	pkgjwt "github.com/rsankarapandian/stores-backoffice/pkg/jwt"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	uc := auth.NewAuthUseCase(memory.New().Users(), auth.JWTConfig{Secret: "s3cret", ExpMinutes: 60, Issuer: "test"})
	created, err := uc.EnsureAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)
	return uc
}

func TestEnsureAdmin_OnlyOnEmptyStore(t *testing.T) {
	uc := newAuth(t)
	created, err := uc.EnsureAdmin(context.Background(), "other", "pw")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureAdmin_RequiresPassword(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.New().Users(), auth.JWTConfig{Secret: "s"})
	_, err := uc.EnsureAdmin(context.Background(), "admin", "")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Username)

	id, err := pkgjwt.Parse("s3cret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.UserID)

	me, err := uc.Me(ctx, id.UserID)
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "admin", me.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
