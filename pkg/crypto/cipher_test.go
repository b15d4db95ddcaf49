package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	payload, err := EncryptString("secret", "bearer-token-value")
	require.NoError(t, err)
	assert.NotEqual(t, "bearer-token-value", string(payload))

	plain, err := DecryptToString("secret", payload)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-value", plain)
}

func TestDecryptRejectsWrongSecret(t *testing.T) {
	payload, err := EncryptString("secret", "bearer-token-value")
	require.NoError(t, err)

	_, err = DecryptToString("other", payload)
	require.Error(t, err)
}

func TestDecryptRejectsTruncatedPayload(t *testing.T) {
	_, err := DecryptToString("secret", []byte{0x01, 0x02})
	require.Error(t, err)
}

func TestNewKeyLengthAndUniqueness(t *testing.T) {
	first, err := NewKey()
	require.NoError(t, err)
	require.Len(t, first, 32)
	second, err := NewKey()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
