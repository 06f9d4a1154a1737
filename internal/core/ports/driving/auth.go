package driving

import (
	"context"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

// AuthOptions configures one authorization attempt.
type AuthOptions struct {
	// Mode selects automatic (browser + local callback) or manual
	// (paste redirect URL) interaction. Modes are mutually exclusive.
	Mode domain.AuthMode

	// Code optionally pre-supplies the manual-mode input (a bare code or
	// a full redirect URL) for non-interactive callers. Implies manual.
	Code string
}

// AuthService drives the OAuth authorization-code flow and reports
// authentication status.
type AuthService interface {
	// Authenticate runs one authorization attempt to completion. Every
	// failure is terminal for the invocation; the operator re-runs the
	// command to retry.
	Authenticate(ctx context.Context, opts AuthOptions) error

	// Status reports whether a token is present and, when possible,
	// whether the provider still accepts it.
	Status(ctx context.Context) domain.AuthStatus
}
