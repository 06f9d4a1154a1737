package cli

import (
	"github.com/spf13/cobra"
)

var (
	sectionsProject   string
	sectionsProjectID string
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List sections, optionally within one project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiFromStore(cmd.Context())
		if err != nil {
			return err
		}
		projectID, err := resolveProjectFlags(cmd.Context(), api, sectionsProject, sectionsProjectID)
		if err != nil {
			return err
		}
		sections, err := api.Sections(cmd.Context(), projectID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), sections)
	},
}

func init() {
	sectionsCmd.Flags().StringVar(&sectionsProject, "project", "", "project name")
	sectionsCmd.Flags().StringVar(&sectionsProjectID, "project-id", "", "project ID")
	rootCmd.AddCommand(sectionsCmd)
}
