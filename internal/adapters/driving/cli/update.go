package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/todoist"
	"github.com/taskwise/todoist-cli/internal/core/domain"
)

var (
	updateContent     string
	updateDescription string
	updateLabels      []string
	updatePriority    int
	updateDue         string
	updateProject     string
	updateProjectID   string
	updateSection     string
	updateSectionID   string
	updateParentID    string
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update or move a task",
	Long: `Updates a task's fields, moves it, or both. The move runs first so
field updates land on the task's final location. Prints the updated
task. Pass --description "" to clear the description.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		taskID := args[0]
		api, err := apiFromStore(ctx)
		if err != nil {
			return err
		}

		projectID, err := resolveProjectFlags(ctx, api, updateProject, updateProjectID)
		if err != nil {
			return err
		}
		// A bare section name without a destination project resolves
		// within the task's current project.
		sectionScope := projectID
		if updateSection != "" && sectionScope == "" {
			current, err := api.Task(ctx, taskID)
			if err != nil {
				return err
			}
			sectionScope = current.ProjectID
		}
		sectionID, err := resolveSectionFlags(ctx, api, sectionScope, updateSection, updateSectionID)
		if err != nil {
			return err
		}

		move := todoist.MoveTaskArgs{
			ProjectID: projectID,
			SectionID: sectionID,
			ParentID:  updateParentID,
		}
		fields := todoist.UpdateTaskArgs{
			Content:   updateContent,
			Labels:    updateLabels,
			Priority:  updatePriority,
			DueString: updateDue,
		}
		if cmd.Flags().Changed("description") {
			fields.Description = &updateDescription
		}

		if move.Empty() && fields.Empty() {
			return fmt.Errorf("%w: nothing to change, pass at least one field or destination flag", domain.ErrInvalidInput)
		}

		if !move.Empty() {
			if err := api.MoveTask(ctx, taskID, move); err != nil {
				if todoist.IsWorkspaceMoveError(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Hint: moving between a personal and a workspace project is not supported by the API; recreate the task instead.")
				}
				return err
			}
		}
		if !fields.Empty() {
			if err := api.UpdateTask(ctx, taskID, fields); err != nil {
				return err
			}
		}

		task, err := api.Task(ctx, taskID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), task)
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateContent, "content", "", "new task content")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description (empty string clears it)")
	updateCmd.Flags().StringSliceVar(&updateLabels, "label", nil, "replacement label set (repeatable)")
	updateCmd.Flags().IntVar(&updatePriority, "priority", 0, "priority 1-4")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date in natural language")
	updateCmd.Flags().StringVar(&updateProject, "project", "", "destination project name")
	updateCmd.Flags().StringVar(&updateProjectID, "project-id", "", "destination project ID")
	updateCmd.Flags().StringVar(&updateSection, "section", "", "destination section name")
	updateCmd.Flags().StringVar(&updateSectionID, "section-id", "", "destination section ID")
	updateCmd.Flags().StringVar(&updateParentID, "parent-id", "", "destination parent task ID")
	rootCmd.AddCommand(updateCmd)
}
