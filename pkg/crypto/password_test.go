package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("hunter2secret")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2secret", string(hash))
	assert.NotContains(t, string(hash), "hunter2secret")
}

func TestComparePasswordOnlyMatchesOriginal(t *testing.T) {
	hash, err := HashPassword("hunter2secret")
	require.NoError(t, err)

	require.NoError(t, ComparePassword(hash, "hunter2secret"))
	require.Error(t, ComparePassword(hash, "hunter2secreT"))
	require.Error(t, ComparePassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("hunter2secret")
	require.NoError(t, err)
	second, err := HashPassword("hunter2secret")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
