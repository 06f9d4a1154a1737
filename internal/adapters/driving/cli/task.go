package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/todoist"
)

var taskCmd = &cobra.Command{
	Use:   "task <task-id>",
	Short: "Show a single task with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		api, err := apiFromStore(ctx)
		if err != nil {
			return err
		}
		task, err := api.Task(ctx, args[0])
		if err != nil {
			return err
		}

		m, err := task.RawMap()
		if err != nil {
			return fmt.Errorf("decode task %s: %w", args[0], err)
		}
		m["comments"] = []todoist.Comment{}
		if task.CommentCount > 0 {
			comments, err := api.Comments(ctx, task.ID, "")
			if err != nil {
				return err
			}
			m["comments"] = comments
		}
		return printJSON(cmd.OutOrStdout(), m)
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
}
