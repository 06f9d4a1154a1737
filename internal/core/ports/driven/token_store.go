package driven

import "context"

// TokenStore provides a single opaque bearer token, abstracting over
// where it physically lives (environment variable, OS keychain, file).
type TokenStore interface {
	// Token returns the first token found in precedence order.
	// When none is found it returns domain.ErrNotAuthenticated wrapped
	// with provider-appropriate setup instructions.
	Token(ctx context.Context) (string, error)

	// TokenQuiet is the same lookup but reports absence instead of
	// failing. Used by status and diagnostic callers that must not abort.
	TokenQuiet(ctx context.Context) (string, bool)

	// Store persists a newly obtained token using the best backend
	// available, falling back from keychain to file. It fails only when
	// every backend attempt fails.
	Store(ctx context.Context, token string) error
}
