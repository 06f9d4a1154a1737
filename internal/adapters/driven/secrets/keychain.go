package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/taskwise/todoist-cli/internal/logger"
)

// Keychain failures degrade to the next backend; they never crash the
// command. Each category gets its own diagnostic so the operator can
// tell a locked keychain from a denied one. An absent entry is an
// expected miss and stays silent.

func (s *Store) fromKeychain() (string, bool) {
	token, err := keyring.Get(s.service, s.username)
	if err == nil && token != "" {
		return token, true
	}
	if err != nil {
		s.warnKeychain("read", err)
	}
	return "", false
}

func (s *Store) toKeychain(token string) bool {
	// Replace any existing entry; some backends reject duplicates.
	if err := keyring.Delete(s.service, s.username); err != nil &&
		!errors.Is(err, keyring.ErrNotFound) {
		s.warnKeychain("replace", err)
	}

	if err := keyring.Set(s.service, s.username, token); err != nil {
		s.warnKeychain("write", err)
		return false
	}
	return true
}

// warnKeychain classifies a keychain error into a user-facing category.
func (s *Store) warnKeychain(op string, err error) {
	if errors.Is(err, keyring.ErrNotFound) {
		return // expected miss, not a warning
	}
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, keyring.ErrUnsupportedPlatform):
		logger.Debug("keychain unavailable on this platform")
	case strings.Contains(msg, "locked"):
		logger.Warn("keychain is locked; unlock it or use %s", s.envVar)
	case strings.Contains(msg, "denied"):
		logger.Warn("keychain access denied; check your OS privacy settings")
	case strings.Contains(msg, "duplicate"):
		logger.Warn("could not update keychain entry (duplicate conflict)")
	default:
		logger.Warn("keychain %s failed: %v", op, err)
	}
}
