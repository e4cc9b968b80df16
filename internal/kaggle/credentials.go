package kaggle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables and file names understood by the Kaggle tooling.
const (
	EnvUsername  = "KAGGLE_USERNAME"
	EnvKey       = "KAGGLE_KEY"
	EnvConfigDir = "KAGGLE_CONFIG_DIR"
	ConfigFile   = "kaggle.json"
)

// Credentials authenticate API calls.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// Valid reports whether both fields are set.
func (c Credentials) Valid() bool {
	return strings.TrimSpace(c.Username) != "" && strings.TrimSpace(c.Key) != ""
}

// CredentialSource controls where credentials are looked up. Zero values use
// the process environment and the user's home directory.
type CredentialSource struct {
	// ConfigDir, if set, is searched for kaggle.json before KAGGLE_CONFIG_DIR.
	ConfigDir string

	Getenv  func(string) string
	HomeDir func() (string, error)
}

func (s CredentialSource) getenv(key string) string {
	if s.Getenv != nil {
		return s.Getenv(key)
	}
	return os.Getenv(key)
}

func (s CredentialSource) homeDir() (string, error) {
	if s.HomeDir != nil {
		return s.HomeDir()
	}
	return os.UserHomeDir()
}

// ConfigPath returns the kaggle.json path that would be consulted.
func (s CredentialSource) ConfigPath() string {
	if s.ConfigDir != "" {
		return filepath.Join(s.ConfigDir, ConfigFile)
	}
	if dir := s.getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, ConfigFile)
	}
	home, err := s.homeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".kaggle", ConfigFile)
}

// LoadCredentials finds credentials and reports where they came from.
// Priority: KAGGLE_USERNAME/KAGGLE_KEY > kaggle.json.
// A missing or incomplete source yields an error wrapping ErrNotConfigured.
func LoadCredentials(src CredentialSource) (Credentials, string, error) {
	if user, key := src.getenv(EnvUsername), src.getenv(EnvKey); user != "" || key != "" {
		creds := Credentials{Username: user, Key: key}
		if !creds.Valid() {
			return Credentials{}, "", fmt.Errorf("%w: both %s and %s must be set", ErrNotConfigured, EnvUsername, EnvKey)
		}
		return creds, "environment", nil
	}

	path := src.ConfigPath()
	if path == "" {
		return Credentials{}, "", fmt.Errorf("%w: cannot locate home directory", ErrNotConfigured)
	}

	data, err := os.ReadFile(path) //nolint:gosec // well-known credentials location
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, "", fmt.Errorf("%w: %s does not exist", ErrNotConfigured, path)
		}
		return Credentials{}, "", fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, "", fmt.Errorf("%w: %s is not valid JSON: %v", ErrNotConfigured, path, err)
	}
	if !creds.Valid() {
		return Credentials{}, "", fmt.Errorf("%w: %s is missing username or key", ErrNotConfigured, path)
	}
	return creds, path, nil
}
