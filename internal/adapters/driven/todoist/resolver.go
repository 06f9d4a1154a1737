package todoist

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

// Resolvers map human-friendly names onto API identifiers. The
// contract is two-step: exact case-insensitive name match against a
// fetched listing first; an unmatched single-word input passes through
// unresolved and the API rejects an invalid identifier itself.

// ResolveProject resolves a project name to its ID. Input that is
// already an ID passes through.
func (c *Client) ResolveProject(ctx context.Context, nameOrID string) (string, error) {
	projects, err := c.Projects(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, nameOrID) {
			return p.ID, nil
		}
	}

	if nameOrID != "" && !strings.Contains(nameOrID, " ") {
		return nameOrID, nil
	}
	return "", fmt.Errorf("%w: project '%s'", domain.ErrNotFound, nameOrID)
}

// ResolveSection resolves a section name to its ID within a project.
// Input that is already an ID passes through. The project is required:
// section names are not unique account-wide.
func (c *Client) ResolveSection(ctx context.Context, projectID, nameOrID string) (string, error) {
	if projectID == "" {
		return "", fmt.Errorf("%w: section lookup needs a project", domain.ErrInvalidInput)
	}
	sections, err := c.Sections(ctx, projectID)
	if err != nil {
		return "", err
	}
	for _, s := range sections {
		if strings.EqualFold(s.Name, nameOrID) {
			return s.ID, nil
		}
	}

	if nameOrID != "" && !strings.Contains(nameOrID, " ") {
		return nameOrID, nil
	}
	return "", fmt.Errorf("%w: section '%s' in project", domain.ErrNotFound, nameOrID)
}

// ResolveAssignee resolves a collaborator name or email to a user ID.
// Unlike projects and sections there is no ID pass-through: an unknown
// assignee is always an error, because the caller filters client-side.
func (c *Client) ResolveAssignee(ctx context.Context, projectID, nameOrEmail string) (string, error) {
	collaborators, err := c.Collaborators(ctx, projectID)
	if err != nil {
		return "", err
	}
	for _, col := range collaborators {
		if strings.EqualFold(col.Name, nameOrEmail) || strings.EqualFold(col.Email, nameOrEmail) {
			return col.ID, nil
		}
	}
	return "", fmt.Errorf("%w: collaborator '%s' in project", domain.ErrNotFound, nameOrEmail)
}
