package todoist

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

// APIError represents a Todoist API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("todoist: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// classifyStatus maps an API error response onto the domain taxonomy.
// Todoist returns 400 for malformed IDs and 404 for well-formed but
// missing ones; callers treat both as not-found.
func classifyStatus(apiErr *APIError) error {
	switch apiErr.StatusCode {
	case 401, 403:
		return fmt.Errorf("%w: %w", domain.ErrUnauthorized, apiErr)
	case 400, 404:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
	case 429:
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, apiErr)
	default:
		return apiErr
	}
}

// classifyTransport maps a failed HTTP round-trip onto the domain
// taxonomy, distinguishing deadlines from unreachability.
func classifyTransport(err error, url string) error {
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout(),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %v", domain.ErrNetworkTimeout, url, err)
	case errors.Is(err, context.Canceled):
		return domain.ErrCancelled
	default:
		return fmt.Errorf("%w: %s: %v", domain.ErrConnectionFailed, url, err)
	}
}

// IsWorkspaceMoveError reports whether a 400 from a move request looks
// like a personal/team workspace boundary violation, which needs a
// specific workaround hint.
func IsWorkspaceMoveError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "workspace") || strings.Contains(msg, "project_id")
}
