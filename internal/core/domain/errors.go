package domain

import "errors"

// Domain errors represent classified failures. Every one of these is
// caught at the command boundary and rendered as a human-readable
// message; none may escape as a raw panic.
var (
	// ErrNotAuthenticated indicates no token was found in any backend.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnconfigured indicates the OAuth client credentials still hold
	// their placeholder values.
	ErrUnconfigured = errors.New("OAuth app not configured")

	// ErrPortInUse indicates the fixed callback port is already bound.
	ErrPortInUse = errors.New("callback port in use")

	// ErrProviderDenied indicates Todoist returned an error parameter on
	// the authorization callback (user declined, invalid scope, ...).
	ErrProviderDenied = errors.New("authorization denied by provider")

	// ErrStateMismatch indicates the CSRF state returned by the provider
	// does not match the one generated for this attempt.
	ErrStateMismatch = errors.New("state parameter mismatch")

	// ErrNoCode indicates the callback carried neither a code nor an error.
	ErrNoCode = errors.New("no authorization code received")

	// ErrTimeout indicates no callback arrived before the deadline.
	ErrTimeout = errors.New("timed out waiting for authorization")

	// ErrExchangeFailed indicates the code-for-token exchange failed.
	ErrExchangeFailed = errors.New("token exchange failed")

	// ErrStoreFailed indicates a token was obtained but could not be
	// persisted by any backend.
	ErrStoreFailed = errors.New("token storage failed")

	// ErrCancelled indicates the operator interrupted an interactive step.
	ErrCancelled = errors.New("cancelled")

	// Remote API errors, surfaced opaquely.

	// ErrUnauthorized indicates the API rejected the bearer token (401).
	ErrUnauthorized = errors.New("token rejected by Todoist")

	// ErrNotFound indicates a missing or invalid resource identifier.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the API rate limit was exceeded (429).
	ErrRateLimited = errors.New("rate limited")

	// ErrNetworkTimeout indicates the request deadline elapsed.
	ErrNetworkTimeout = errors.New("request timed out")

	// ErrConnectionFailed indicates Todoist could not be reached.
	ErrConnectionFailed = errors.New("could not connect to Todoist")

	// ErrInvalidInput indicates malformed command input.
	ErrInvalidInput = errors.New("invalid input")
)
