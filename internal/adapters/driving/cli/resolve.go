package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

// Flag resolution shared by the task commands. Name and ID flags are
// mutually exclusive; names go through the API resolvers, IDs pass
// straight through.

func resolveProjectFlags(ctx context.Context, api apiClient, name, id string) (string, error) {
	if name != "" && id != "" {
		return "", fmt.Errorf("%w: --project and --project-id are mutually exclusive", domain.ErrInvalidInput)
	}
	if id != "" {
		return id, nil
	}
	if name != "" {
		return api.ResolveProject(ctx, name)
	}
	return "", nil
}

func resolveSectionFlags(ctx context.Context, api apiClient, projectID, name, id string) (string, error) {
	if name != "" && id != "" {
		return "", fmt.Errorf("%w: --section and --section-id are mutually exclusive", domain.ErrInvalidInput)
	}
	if id != "" {
		return id, nil
	}
	if name != "" {
		// Section names are only unique within a project; an unscoped
		// lookup could match a same-named section anywhere.
		if projectID == "" {
			return "", fmt.Errorf("%w: --section needs --project or --project-id", domain.ErrInvalidInput)
		}
		return api.ResolveSection(ctx, projectID, name)
	}
	return "", nil
}

// parseOlderThan parses a relative age like "30d", "2w" or "3m" into a
// duration. Months count as 30 days.
func parseOlderThan(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: --older-than wants <number><d|w|m>, got %q", domain.ErrInvalidInput, s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: --older-than wants <number><d|w|m>, got %q", domain.ErrInvalidInput, s)
	}
	day := 24 * time.Hour
	switch strings.ToLower(s[len(s)-1:]) {
	case "d":
		return time.Duration(n) * day, nil
	case "w":
		return time.Duration(n) * 7 * day, nil
	case "m":
		return time.Duration(n) * 30 * day, nil
	}
	return 0, fmt.Errorf("%w: --older-than unit must be d, w or m, got %q", domain.ErrInvalidInput, s)
}
