package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/secrets"
	"github.com/taskwise/todoist-cli/internal/core/services"
)

var (
	okMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	failMark = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the local setup",
	Long:  "Checks token storage, provider connectivity and the OAuth callback port, and reports each result.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		healthy := true

		if settings != nil {
			fmt.Fprintf(out, "%s Config: %s\n", okMark, settings.Path())
		} else {
			fmt.Fprintf(out, "%s Config directory unavailable\n", failMark)
		}

		_, hasToken := tokenStore.TokenQuiet(ctx)

		if credentials != nil {
			if creds, err := credentials.ClientCredentials(); err == nil && creds.Configured() {
				fmt.Fprintf(out, "%s OAuth app credentials configured\n", okMark)
			} else if hasToken {
				fmt.Fprintf(out, "%s OAuth app not configured (a stored token is in use)\n", failMark)
			} else {
				healthy = false
				fmt.Fprintf(out, "%s OAuth app not configured and no token stored\n", failMark)
			}
		}

		if hasToken {
			source := "keychain or token file"
			if os.Getenv(secrets.EnvVar) != "" {
				source = secrets.EnvVar + " (environment overrides other backends)"
			}
			fmt.Fprintf(out, "%s API token found via %s\n", okMark, source)
		} else {
			healthy = false
			fmt.Fprintf(out, "%s No API token. Run `todoist auth` or set %s\n", failMark, secrets.EnvVar)
		}

		st := authService.Status(ctx)
		if st.Authenticated {
			fmt.Fprintf(out, "%s %s\n", okMark, st.Message)
		} else {
			healthy = false
			fmt.Fprintf(out, "%s %s\n", failMark, st.Message)
		}

		if err := services.CheckPortAvailable(services.DefaultCallbackPort); err != nil {
			fmt.Fprintf(out, "%s Callback port %d is busy; `todoist auth` will need --manual\n", failMark, services.DefaultCallbackPort)
		} else {
			fmt.Fprintf(out, "%s Callback port %d is free\n", okMark, services.DefaultCallbackPort)
		}

		if !healthy {
			return errors.New("setup problems found, see above")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
