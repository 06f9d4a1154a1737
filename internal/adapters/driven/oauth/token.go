// Package oauth exchanges an authorization code for a bearer token.
//
// The exchange is a plain form POST rather than an oauth2 token source:
// Todoist's token response omits token_type and expiry fields, which
// trips the library's validation, and the returned token never expires
// so there is nothing for a token source to refresh.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taskwise/todoist-cli/internal/core/domain"
	"github.com/taskwise/todoist-cli/internal/core/ports/driven"
	"github.com/taskwise/todoist-cli/internal/logger"
)

// Ensure Exchanger implements the interface.
var _ driven.CodeExchanger = (*Exchanger)(nil)

// DefaultTokenURL is the Todoist token endpoint.
const DefaultTokenURL = "https://todoist.com/oauth/access_token"

const exchangeTimeout = 30 * time.Second

// Exchanger performs the code-for-token exchange.
type Exchanger struct {
	// TokenURL overrides the token endpoint; empty means the default.
	TokenURL string

	// HTTPClient overrides the client; nil means a default with a
	// 30-second timeout.
	HTTPClient *http.Client
}

// tokenResponse is the subset of the provider's response we use.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

// Exchange posts the authorization code and returns the access token.
// All failure shapes collapse into domain.ErrExchangeFailed with the
// provider's detail attached.
func (e *Exchanger) Exchange(ctx context.Context, creds domain.ClientCredentials, code, redirectURI string) (string, error) {
	tokenURL := e.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	client := e.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: exchangeTimeout}
	}

	form := url.Values{}
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", domain.ErrExchangeFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	logger.Debug("exchanging code at %s", tokenURL)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", domain.ErrExchangeFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: provider returned HTTP %d: %s",
			domain.ErrExchangeFailed, resp.StatusCode, truncate(string(body), 200))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("%w: malformed token response: %w", domain.ErrExchangeFailed, err)
	}
	if tr.Error != "" {
		return "", fmt.Errorf("%w: provider error: %s", domain.ErrExchangeFailed, tr.Error)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: response contained no access_token", domain.ErrExchangeFailed)
	}
	return tr.AccessToken, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
