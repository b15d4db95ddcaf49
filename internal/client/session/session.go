// Package session persists the CLI's credentials and preferences under the
// user's config dir. The bearer token is encrypted at rest with a locally
// generated key kept next to it with 0600 permissions.
package session

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jobdeck/jobdeck/pkg/crypto"
)

const (
	configFile = "config.json"
	tokenFile  = "token"
	keyFile    = "key"
)

// Config holds the CLI's persisted settings. The theme lives here because it
// is client-local state that must survive restarts.
type Config struct {
	APIBaseURL string `json:"api_base_url"`
	UserName   string `json:"user_name,omitempty"`
	Theme      string `json:"theme,omitempty"`
}

// Manager reads and writes session files in a single directory.
type Manager struct {
	dir string
}

// New returns a Manager rooted at dir, defaulting to the user config dir.
func New(dir string) (*Manager, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate config dir: %w", err)
		}
		dir = filepath.Join(base, "jobdeck")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// LoadConfig reads the persisted config, returning zero values when absent.
func (m *Manager) LoadConfig() (Config, error) {
	var cfg Config
	raw, err := os.ReadFile(filepath.Join(m.dir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config file.
func (m *Manager) SaveConfig(cfg Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, configFile), raw, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveToken encrypts and stores the bearer token.
func (m *Manager) SaveToken(token string) error {
	secret, err := m.ensureKey()
	if err != nil {
		return err
	}
	ciphertext, err := crypto.EncryptString(secret, token)
	if err != nil {
		return fmt.Errorf("encrypt token: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, tokenFile), ciphertext, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Token decrypts and returns the stored bearer token, or "" when none is
// cached.
func (m *Manager) Token() (string, error) {
	ciphertext, err := os.ReadFile(filepath.Join(m.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	secret, err := m.ensureKey()
	if err != nil {
		return "", err
	}
	token, err := crypto.DecryptToString(secret, ciphertext)
	if err != nil {
		return "", fmt.Errorf("decrypt token: %w", err)
	}
	return token, nil
}

// ClearToken removes the cached token. Logout is client-local only; the
// server never revokes tokens.
func (m *Manager) ClearToken() error {
	err := os.Remove(filepath.Join(m.dir, tokenFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (m *Manager) ensureKey() (string, error) {
	path := filepath.Join(m.dir, keyFile)
	raw, err := os.ReadFile(path)
	if err == nil {
		return string(raw), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("read key: %w", err)
	}
	key, err := crypto.NewKey()
	if err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	encoded := hex.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return "", fmt.Errorf("write key: %w", err)
	}
	return encoded, nil
}
