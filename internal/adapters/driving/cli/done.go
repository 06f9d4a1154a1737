package cli

import (
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Complete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiFromStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := api.CloseTask(cmd.Context(), args[0]); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"success": true,
			"task_id": args[0],
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
