package cli

import (
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter <query>",
	Short: "List tasks matching a Todoist filter query",
	Long: `Runs a server-side filter query, e.g.:

  todoist filter "today"
  todoist filter "overdue & #Work"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiFromStore(cmd.Context())
		if err != nil {
			return err
		}
		tasks, err := api.FilterTasks(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), tasks)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
