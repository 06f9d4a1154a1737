package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/core/domain"
	"github.com/taskwise/todoist-cli/internal/core/ports/driving"
)

var (
	authManual bool
	authCode   string
	authStatus bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Connect your Todoist account via OAuth",
	Long: `Runs the OAuth authorization flow and stores the resulting token.

By default a browser opens and a local listener on port 8080 receives
the redirect. Use --manual on headless hosts to paste the redirect URL
instead, or --status to check the current token without authorizing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if authStatus {
			st := authService.Status(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), st.Message)
			if !st.Authenticated {
				return domain.ErrNotAuthenticated
			}
			return nil
		}

		mode := domain.AuthModeAutomatic
		if authManual || authCode != "" {
			mode = domain.AuthModeManual
		}
		return authService.Authenticate(cmd.Context(), driving.AuthOptions{
			Mode: mode,
			Code: authCode,
		})
	},
}

func init() {
	authCmd.Flags().BoolVar(&authManual, "manual", false, "paste the redirect URL instead of running a local listener")
	authCmd.Flags().StringVar(&authCode, "code", "", "pre-supply the authorization code or redirect URL (implies --manual)")
	authCmd.Flags().BoolVar(&authStatus, "status", false, "report authentication status and exit")
	rootCmd.AddCommand(authCmd)
}
