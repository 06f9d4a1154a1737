package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

func TestClientCredentialsMissingFile(t *testing.T) {
	f := &FileCredentials{SearchPaths: []string{filepath.Join(t.TempDir(), CredentialsFileName)}}

	creds, err := f.ClientCredentials()
	require.NoError(t, err)
	assert.False(t, creds.Configured())
	assert.Equal(t, domain.PlaceholderClientID, creds.ClientID)
}

func TestClientCredentialsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), CredentialsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"client_id": "id-1", "client_secret": "sec-1"}`), 0o600))

	f := &FileCredentials{SearchPaths: []string{path}}
	creds, err := f.ClientCredentials()
	require.NoError(t, err)
	assert.True(t, creds.Configured())
	assert.Equal(t, "id-1", creds.ClientID)
	assert.Equal(t, "sec-1", creds.ClientSecret)
}

func TestClientCredentialsFirstReadableWins(t *testing.T) {
	missing := filepath.Join(t.TempDir(), CredentialsFileName)
	real := filepath.Join(t.TempDir(), CredentialsFileName)
	require.NoError(t, os.WriteFile(real, []byte(`{"client_id": "id-2", "client_secret": "sec-2"}`), 0o600))

	f := &FileCredentials{SearchPaths: []string{missing, real}}
	creds, err := f.ClientCredentials()
	require.NoError(t, err)
	assert.Equal(t, "id-2", creds.ClientID)
}

func TestClientCredentialsMalformedFallsThrough(t *testing.T) {
	bad := filepath.Join(t.TempDir(), CredentialsFileName)
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	good := filepath.Join(t.TempDir(), CredentialsFileName)
	require.NoError(t, os.WriteFile(good, []byte(`{"client_id": "id-3", "client_secret": "sec-3"}`), 0o600))

	f := &FileCredentials{SearchPaths: []string{bad, good}}
	creds, err := f.ClientCredentials()
	require.NoError(t, err)
	assert.Equal(t, "id-3", creds.ClientID)
}

func TestClientCredentialsIncompleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), CredentialsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"client_id": "id-only"}`), 0o600))

	f := &FileCredentials{SearchPaths: []string{path}}
	creds, err := f.ClientCredentials()
	require.NoError(t, err)
	assert.False(t, creds.Configured())
}
