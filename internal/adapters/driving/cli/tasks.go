package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/todoist"
	"github.com/taskwise/todoist-cli/internal/core/domain"
	"github.com/taskwise/todoist-cli/internal/logger"
)

var (
	tasksProject        string
	tasksProjectID      string
	tasksSection        string
	tasksSectionID      string
	tasksLabel          string
	tasksAssignee       string
	tasksCreatedBefore  string
	tasksOlderThan      string
	tasksIncludeSection bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List active tasks",
	Long: `Lists active tasks as JSON. Project, section and label narrow the
listing server-side; assignee and age filters are applied client-side.
Tasks with comments get them inlined under a "comments" key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		api, err := apiFromStore(ctx)
		if err != nil {
			return err
		}

		cutoff, err := ageCutoff(tasksCreatedBefore, tasksOlderThan)
		if err != nil {
			return err
		}

		projectID, err := resolveProjectFlags(ctx, api, tasksProject, tasksProjectID)
		if err != nil {
			return err
		}
		sectionID, err := resolveSectionFlags(ctx, api, projectID, tasksSection, tasksSectionID)
		if err != nil {
			return err
		}

		assigneeID := ""
		if tasksAssignee != "" {
			if projectID == "" {
				return fmt.Errorf("%w: --assignee needs --project or --project-id (collaborators are per project)", domain.ErrInvalidInput)
			}
			assigneeID, err = api.ResolveAssignee(ctx, projectID, tasksAssignee)
			if err != nil {
				return err
			}
		}

		tasks, err := api.Tasks(ctx, todoist.TaskFilters{
			ProjectID: projectID,
			SectionID: sectionID,
			Label:     tasksLabel,
		})
		if err != nil {
			return err
		}

		tasks = filterTasks(tasks, assigneeID, cutoff)

		out, err := renderTasks(ctx, api, tasks, projectID, tasksIncludeSection)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

// ageCutoff turns the two age flags into an upper creation-time bound.
// The flags are mutually exclusive; a zero time means no age filter.
func ageCutoff(createdBefore, olderThan string) (time.Time, error) {
	if createdBefore != "" && olderThan != "" {
		return time.Time{}, fmt.Errorf("%w: --created-before and --older-than are mutually exclusive", domain.ErrInvalidInput)
	}
	if createdBefore != "" {
		t, err := time.Parse("2006-01-02", createdBefore)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: --created-before wants YYYY-MM-DD, got %q", domain.ErrInvalidInput, createdBefore)
		}
		// The named day is inclusive; tasks created during it still match.
		return t.Add(24*time.Hour - time.Second), nil
	}
	if olderThan != "" {
		d, err := parseOlderThan(olderThan)
		if err != nil {
			return time.Time{}, err
		}
		return time.Now().Add(-d), nil
	}
	return time.Time{}, nil
}

// filterTasks applies the client-side filters. A task without a
// parseable creation time never matches an age filter.
func filterTasks(tasks []todoist.Task, assigneeID string, cutoff time.Time) []todoist.Task {
	if assigneeID == "" && cutoff.IsZero() {
		return tasks
	}
	kept := make([]todoist.Task, 0, len(tasks))
	for _, t := range tasks {
		if assigneeID != "" && t.AssigneeID != assigneeID {
			continue
		}
		if !cutoff.IsZero() {
			created, ok := t.CreatedTime()
			if !ok || !created.Before(cutoff) {
				continue
			}
		}
		kept = append(kept, t)
	}
	return kept
}

// renderTasks builds the output: every task gets a comments key
// (fetched only when the task has any), and a section-name lookup when
// requested.
func renderTasks(ctx context.Context, api apiClient, tasks []todoist.Task, projectID string, includeSection bool) ([]map[string]any, error) {
	var sectionNames map[string]string
	if includeSection {
		sections, err := api.Sections(ctx, projectID)
		if err != nil {
			return nil, err
		}
		sectionNames = make(map[string]string, len(sections))
		for _, s := range sections {
			sectionNames[s.ID] = s.Name
		}
	}

	out := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		m, err := t.RawMap()
		if err != nil {
			return nil, fmt.Errorf("decode task %s: %w", t.ID, err)
		}
		if includeSection {
			m["section_name"] = sectionNames[t.SectionID]
		}
		m["comments"] = []todoist.Comment{}
		if t.CommentCount > 0 {
			comments, err := api.Comments(ctx, t.ID, "")
			if err != nil {
				// A task listing should survive one comment fetch failing.
				logger.Warn("could not fetch comments for task %s: %v", t.ID, err)
			} else {
				m["comments"] = comments
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func init() {
	tasksCmd.Flags().StringVar(&tasksProject, "project", "", "project name")
	tasksCmd.Flags().StringVar(&tasksProjectID, "project-id", "", "project ID")
	tasksCmd.Flags().StringVar(&tasksSection, "section", "", "section name")
	tasksCmd.Flags().StringVar(&tasksSectionID, "section-id", "", "section ID")
	tasksCmd.Flags().StringVar(&tasksLabel, "label", "", "label name")
	tasksCmd.Flags().StringVar(&tasksAssignee, "assignee", "", "collaborator name or email (requires a project)")
	tasksCmd.Flags().StringVar(&tasksCreatedBefore, "created-before", "", "only tasks created before this date (YYYY-MM-DD)")
	tasksCmd.Flags().StringVar(&tasksOlderThan, "older-than", "", "only tasks older than e.g. 30d, 2w, 3m")
	tasksCmd.Flags().BoolVar(&tasksIncludeSection, "include-section-name", false, "attach each task's section name")
	rootCmd.AddCommand(tasksCmd)
}
