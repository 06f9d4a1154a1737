package secrets

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/taskwise/todoist-cli/internal/core/domain"
	"github.com/taskwise/todoist-cli/internal/core/ports/driven"
	"github.com/taskwise/todoist-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.TokenStore = (*Store)(nil)

const (
	// EnvVar carries a pre-obtained token and takes precedence over
	// every other backend.
	EnvVar = "TODOIST_API_KEY"

	// KeychainService is the service name of the keychain entry, keyed
	// by the current OS user.
	KeychainService = "todoist-api-key"

	// TokenFileName is the fallback token file under the home directory.
	TokenFileName = ".todoist-token"
)

// Store is the layered token store.
type Store struct {
	envVar   string
	service  string
	filePath string
	username string

	// Diag receives storage confirmations and fallback notices.
	// Defaults to stderr so token output streams stay clean.
	Diag io.Writer
}

// NewStore creates a store with the default backends.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Store{
		envVar:   EnvVar,
		service:  KeychainService,
		filePath: filepath.Join(home, TokenFileName),
		username: currentUsername(),
		Diag:     os.Stderr,
	}, nil
}

// NewStoreAt creates a store with an explicit token file path and
// keychain service name. Used by tests.
func NewStoreAt(envVar, service, filePath string) *Store {
	return &Store{
		envVar:   envVar,
		service:  service,
		filePath: filePath,
		username: currentUsername(),
		Diag:     os.Stderr,
	}
}

// Token returns the first token found in precedence order, or a
// not-authenticated error carrying setup instructions.
func (s *Store) Token(ctx context.Context) (string, error) {
	if token, ok := s.TokenQuiet(ctx); ok {
		return token, nil
	}
	return "", fmt.Errorf("%w: %s not found\n\nSetup options:\n%s",
		domain.ErrNotAuthenticated, s.envVar, s.setupHint())
}

// TokenQuiet is the same lookup without failing; status and doctor
// callers use it.
func (s *Store) TokenQuiet(_ context.Context) (string, bool) {
	if token := os.Getenv(s.envVar); token != "" {
		logger.Debug("token found in %s", s.envVar)
		return token, true
	}
	if token, ok := s.fromKeychain(); ok {
		logger.Debug("token found in keychain service %s", s.service)
		return token, true
	}
	if token, ok := s.fromFile(); ok {
		logger.Debug("token found in %s", s.filePath)
		return token, true
	}
	return "", false
}

// Store persists a token: keychain first, then the file fallback. It
// fails only when every backend attempt fails.
func (s *Store) Store(_ context.Context, token string) error {
	if s.toKeychain(token) {
		fmt.Fprintln(s.Diag, "  Token stored in system keychain.")
		return nil
	}
	logger.Warn("keychain storage failed, falling back to file")

	if s.toFile(token) {
		fmt.Fprintf(s.Diag, "  Token stored in %s (mode 600).\n", s.filePath)
		return nil
	}
	return fmt.Errorf("%w: no backend could persist the token", domain.ErrStoreFailed)
}

// FilePath returns the fallback token file path, for diagnostics.
func (s *Store) FilePath() string {
	return s.filePath
}

func (s *Store) fromFile() (string, bool) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *Store) toFile(token string) bool {
	if err := os.WriteFile(s.filePath, []byte(token+"\n"), 0o600); err != nil {
		logger.Warn("could not write %s: %v", s.filePath, err)
		return false
	}
	// WriteFile's mode only applies to new files; clamp pre-existing ones.
	if err := os.Chmod(s.filePath, 0o600); err != nil {
		logger.Warn("could not restrict permissions on %s: %v", s.filePath, err)
	}
	return true
}

func (s *Store) setupHint() string {
	var b strings.Builder
	if runtime.GOOS == "darwin" {
		fmt.Fprintf(&b, "  macOS Keychain: security add-generic-password -a \"$USER\" -s %q -w \"TOKEN\"\n", s.service)
	}
	fmt.Fprintf(&b, "  Environment var: export %s=\"TOKEN\" in ~/.bashrc or ~/.secrets\n", s.envVar)
	b.WriteString("\nOr run `todoist auth` to connect via OAuth.")
	return b.String()
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
