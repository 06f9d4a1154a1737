package todoist

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taskwise/todoist-cli/internal/core/ports/driven"
)

// Ensure TokenProbe implements the interface.
var _ driven.TokenVerifier = (*TokenProbe)(nil)

// TokenProbe confirms a token is still accepted by fetching a single
// projects page. Cheap enough for status and doctor callers.
type TokenProbe struct {
	// BaseURL overrides the API root; empty means the default.
	BaseURL string
}

// Verify makes one read-only call with the given token. A 401 surfaces
// as domain.ErrUnauthorized; network failures surface as their own
// categories so callers do not mistake an offline host for a revoked
// token.
func (p *TokenProbe) Verify(ctx context.Context, token string) error {
	opts := []Option{}
	if p.BaseURL != "" {
		opts = append(opts, WithBaseURL(p.BaseURL))
	}
	c := NewClient(token, opts...)

	q := url.Values{}
	q.Set("limit", "1")
	var pg page[Project]
	return c.do(ctx, http.MethodGet, "/projects", q, nil, &pg)
}
