package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

var (
	addSectionProject   string
	addSectionProjectID string
)

var addSectionCmd = &cobra.Command{
	Use:   "add-section <name>",
	Short: "Create a section within a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		api, err := apiFromStore(ctx)
		if err != nil {
			return err
		}
		projectID, err := resolveProjectFlags(ctx, api, addSectionProject, addSectionProjectID)
		if err != nil {
			return err
		}
		if projectID == "" {
			return fmt.Errorf("%w: add-section needs --project or --project-id", domain.ErrInvalidInput)
		}
		section, err := api.AddSection(ctx, args[0], projectID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), section)
	},
}

func init() {
	addSectionCmd.Flags().StringVar(&addSectionProject, "project", "", "project name")
	addSectionCmd.Flags().StringVar(&addSectionProjectID, "project-id", "", "project ID")
	rootCmd.AddCommand(addSectionCmd)
}
