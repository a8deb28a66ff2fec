package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/rsankarapandian/stores-backoffice/pkg/jwt"
)

const testSecret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u-1", Username: "kumar", Role: "clerk"}
	tok, err := pkgjwt.Generate(testSecret, "rsp-test", id, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Expired(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "rsp-test", pkgjwt.Identity{UserID: "u-1"}, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "rsp-test", pkgjwt.Identity{UserID: "u-1"}, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("another-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "rsp-test", pkgjwt.Identity{UserID: "u-1"}, 60)
	assert.Error(t, err)
}
