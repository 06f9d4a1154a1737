package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/taskwise/todoist-cli/internal/core/domain"
	"github.com/taskwise/todoist-cli/internal/core/ports/driven"
	"github.com/taskwise/todoist-cli/internal/logger"
)

// Ensure FileCredentials implements the interface.
var _ driven.CredentialsSource = (*FileCredentials)(nil)

// CredentialsFileName is the OAuth app credentials file, looked up next
// to the binary and then in the config directory.
const CredentialsFileName = "client_credentials.json"

// FileCredentials loads OAuth client credentials from a JSON file. A
// missing file yields placeholder credentials, which the auth flow
// recognises and turns into setup instructions.
type FileCredentials struct {
	// SearchPaths are checked in order; the first readable file wins.
	SearchPaths []string
}

// NewFileCredentials builds the default search list: the executable's
// directory, then the user config directory.
func NewFileCredentials(configDir string) *FileCredentials {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), CredentialsFileName))
	}
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, CredentialsFileName))
	}
	return &FileCredentials{SearchPaths: paths}
}

type credentialsFile struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ClientCredentials returns the configured credentials, or placeholders
// when no file exists. Unreadable or malformed files warn and fall
// through rather than abort; the flow still prints setup instructions.
func (f *FileCredentials) ClientCredentials() (domain.ClientCredentials, error) {
	for _, path := range f.SearchPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("could not read %s: %v", path, err)
			}
			continue
		}
		var cf credentialsFile
		if err := json.Unmarshal(data, &cf); err != nil {
			logger.Warn("malformed credentials file %s: %v", path, err)
			continue
		}
		if cf.ClientID == "" || cf.ClientSecret == "" {
			logger.Warn("credentials file %s is missing client_id or client_secret", path)
			continue
		}
		logger.Debug("loaded OAuth client credentials from %s", path)
		return domain.ClientCredentials{
			ClientID:     cf.ClientID,
			ClientSecret: cf.ClientSecret,
		}, nil
	}
	return domain.ClientCredentials{
		ClientID:     domain.PlaceholderClientID,
		ClientSecret: domain.PlaceholderClientSecret,
	}, nil
}
