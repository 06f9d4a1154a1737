package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

var (
	commentsTaskID    string
	commentsProjectID string
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "List comments on a task or project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if commentsTaskID == "" && commentsProjectID == "" {
			return fmt.Errorf("%w: comments needs --task-id or --project-id", domain.ErrInvalidInput)
		}
		api, err := apiFromStore(cmd.Context())
		if err != nil {
			return err
		}
		comments, err := api.Comments(cmd.Context(), commentsTaskID, commentsProjectID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), comments)
	},
}

func init() {
	commentsCmd.Flags().StringVar(&commentsTaskID, "task-id", "", "task ID")
	commentsCmd.Flags().StringVar(&commentsProjectID, "project-id", "", "project ID")
	rootCmd.AddCommand(commentsCmd)
}
