package cli

import (
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List all projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiFromStore(cmd.Context())
		if err != nil {
			return err
		}
		projects, err := api.Projects(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), projects)
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
