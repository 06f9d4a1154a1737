package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

// defaultProjectKey names the project used by `add` when no project
// flag is given.
const defaultProjectKey = "default_project"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persistent settings",
	Long: `Settings live in a TOML file under the config directory. Known keys:

  default_project   project used by "add" when no --project is given`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings == nil {
			return fmt.Errorf("%w: settings store unavailable", domain.ErrInvalidInput)
		}
		fmt.Fprintln(cmd.OutOrStdout(), settings.Path())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings == nil {
			return fmt.Errorf("%w: settings store unavailable", domain.ErrInvalidInput)
		}
		fmt.Fprintln(cmd.OutOrStdout(), settings.GetString(args[0], ""))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings == nil {
			return fmt.Errorf("%w: settings store unavailable", domain.ErrInvalidInput)
		}
		if err := settings.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
