package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

var collaboratorsProjectID string

var collaboratorsCmd = &cobra.Command{
	Use:   "collaborators",
	Short: "List the users sharing a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if collaboratorsProjectID == "" {
			return fmt.Errorf("%w: collaborators needs --project-id", domain.ErrInvalidInput)
		}
		api, err := apiFromStore(cmd.Context())
		if err != nil {
			return err
		}
		collaborators, err := api.Collaborators(cmd.Context(), collaboratorsProjectID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), collaborators)
	},
}

func init() {
	collaboratorsCmd.Flags().StringVar(&collaboratorsProjectID, "project-id", "", "project ID")
	rootCmd.AddCommand(collaboratorsCmd)
}
