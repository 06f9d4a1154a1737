package driven

import (
	"context"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

// CodeExchanger exchanges an authorization code for a bearer token at
// the provider's token endpoint.
type CodeExchanger interface {
	Exchange(ctx context.Context, creds domain.ClientCredentials, code, redirectURI string) (string, error)
}

// TokenVerifier makes one lightweight read-only API call to confirm a
// token is still accepted by the provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) error
}

// CredentialsSource loads the OAuth app credentials for this process.
type CredentialsSource interface {
	ClientCredentials() (domain.ClientCredentials, error)
}
