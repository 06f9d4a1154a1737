package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/todoist"
)

var (
	addProject     string
	addProjectID   string
	addSection     string
	addSectionID   string
	addParentID    string
	addLabels      []string
	addPriority    int
	addDue         string
	addDescription string
)

var addCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Create a task",
	Long: `Creates a task and prints it. Project and section may be given by
name or ID; priority uses the API scale (1 lowest to 4 highest).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		api, err := apiFromStore(ctx)
		if err != nil {
			return err
		}

		projectID, err := resolveProjectFlags(ctx, api, addProject, addProjectID)
		if err != nil {
			return err
		}
		if projectID == "" && settings != nil {
			if name := settings.GetString(defaultProjectKey, ""); name != "" {
				if projectID, err = api.ResolveProject(ctx, name); err != nil {
					return err
				}
			}
		}
		sectionID, err := resolveSectionFlags(ctx, api, projectID, addSection, addSectionID)
		if err != nil {
			return err
		}

		task, err := api.AddTask(ctx, todoist.AddTaskArgs{
			Content:     args[0],
			Description: addDescription,
			ProjectID:   projectID,
			SectionID:   sectionID,
			ParentID:    addParentID,
			Labels:      addLabels,
			Priority:    addPriority,
			DueString:   addDue,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), task)
	},
}

func init() {
	addCmd.Flags().StringVar(&addProject, "project", "", "project name")
	addCmd.Flags().StringVar(&addProjectID, "project-id", "", "project ID")
	addCmd.Flags().StringVar(&addSection, "section", "", "section name")
	addCmd.Flags().StringVar(&addSectionID, "section-id", "", "section ID")
	addCmd.Flags().StringVar(&addParentID, "parent-id", "", "parent task ID (creates a subtask)")
	addCmd.Flags().StringSliceVar(&addLabels, "label", nil, "label name (repeatable)")
	addCmd.Flags().IntVar(&addPriority, "priority", 0, "priority 1-4")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date in natural language, e.g. \"tomorrow 9am\"")
	addCmd.Flags().StringVar(&addDescription, "description", "", "task description")
	rootCmd.AddCommand(addCmd)
}
