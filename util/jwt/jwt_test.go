package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", 42, "ADMIN", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Parse(tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "ADMIN", claims["role"])
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", 42, "USER", time.Hour)
	require.NoError(t, err)

	_, err = Parse(tok, "other-secret")
	require.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Issue("secret", 42, "USER", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok, "secret")
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("  ", "secret")
	require.Error(t, err)
}
