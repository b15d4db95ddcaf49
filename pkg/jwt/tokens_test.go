package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "Ada", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "jobdeck", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := GenerateToken("user-1", "Ada", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, "secret")
	require.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "Ada", "secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "other-secret")
	require.Error(t, err)
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	token, err := GenerateToken("user-1", "Ada", "secret", time.Hour)
	require.NoError(t, err)

	// Flip one character in the signature segment.
	raw := []byte(token)
	last := len(raw) - 1
	if raw[last] == 'A' {
		raw[last] = 'B'
	} else {
		raw[last] = 'A'
	}
	_, err = Parse(string(raw), "secret")
	require.Error(t, err)
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := Parse(token, "secret")
		require.Error(t, err, "token %q", token)
	}
}
