package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)

	// Absent config reads as zero values.
	cfg, err := m.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	want := Config{APIBaseURL: "http://localhost:5000", UserName: "Ada", Theme: "dark"}
	require.NoError(t, m.SaveConfig(want))

	got, err := m.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenEncryptedAtRest(t *testing.T) {
	dir := t.TempDir()
	m, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, m.SaveToken("bearer-token-value"))

	raw, err := os.ReadFile(filepath.Join(dir, "token"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bearer-token-value")

	token, err := m.Token()
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-value", token)
}

func TestTokenAbsentReadsEmpty(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)

	token, err := m.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestClearToken(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.SaveToken("bearer-token-value"))
	require.NoError(t, m.ClearToken())

	token, err := m.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is not an error.
	require.NoError(t, m.ClearToken())
}

func TestFilePermissions(t *testing.T) {
	dir := t.TempDir()
	m, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, m.SaveToken("bearer-token-value"))
	require.NoError(t, m.SaveConfig(Config{APIBaseURL: "http://localhost:5000"}))

	for _, name := range []string{"token", "key", "config.json"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), name)
	}
}
