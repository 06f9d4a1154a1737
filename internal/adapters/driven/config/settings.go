// Package config holds the file-backed configuration adapters: OAuth
// client credentials (JSON) and user settings (TOML).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/taskwise/todoist-cli/internal/core/ports/driven"
	"github.com/taskwise/todoist-cli/internal/logger"
)

// Ensure Settings implements the interface.
var _ driven.ConfigStore = (*Settings)(nil)

// SettingsFileName is the TOML settings file under the config directory.
const SettingsFileName = "config.toml"

// DefaultConfigDir returns ~/.todoist-cli, creating it if needed.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".todoist-cli")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// Settings is a TOML-backed key/value settings store. Reads hit the
// in-memory copy; every Set rewrites the file.
type Settings struct {
	mu   sync.RWMutex
	path string
	data map[string]any
}

// OpenSettings loads (or initialises) the settings file under dir.
func OpenSettings(dir string) (*Settings, error) {
	s := &Settings{
		path: filepath.Join(dir, SettingsFileName),
		data: map[string]any{},
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := toml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return s, nil
}

// GetString returns the string value for key, or fallback when unset or
// of another type.
func (s *Settings) GetString(key, fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.data[key].(string); ok {
		return v
	}
	return fallback
}

// GetInt returns the integer value for key, or fallback when unset or
// of another type. TOML integers decode as int64.
func (s *Settings) GetInt(key string, fallback int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch v := s.data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// Set stores a value and persists the file.
func (s *Settings) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value

	raw, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	logger.Debug("settings saved to %s", s.path)
	return nil
}

// Path returns the settings file location.
func (s *Settings) Path() string {
	return s.path
}
