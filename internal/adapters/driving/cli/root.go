// Package cli defines the command tree. Commands talk to the core
// through the driving ports and to Todoist through a narrow client
// interface, both held in package-level variables so tests can swap in
// fakes.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/todoist"
	"github.com/taskwise/todoist-cli/internal/core/ports/driven"
	"github.com/taskwise/todoist-cli/internal/core/ports/driving"
	"github.com/taskwise/todoist-cli/internal/logger"
)

// apiClient is the slice of the Todoist client the commands use.
type apiClient interface {
	Projects(ctx context.Context) ([]todoist.Project, error)
	Sections(ctx context.Context, projectID string) ([]todoist.Section, error)
	Tasks(ctx context.Context, f todoist.TaskFilters) ([]todoist.Task, error)
	FilterTasks(ctx context.Context, query string) ([]todoist.Task, error)
	Task(ctx context.Context, id string) (*todoist.Task, error)
	CloseTask(ctx context.Context, id string) error
	AddTask(ctx context.Context, args todoist.AddTaskArgs) (*todoist.Task, error)
	UpdateTask(ctx context.Context, id string, args todoist.UpdateTaskArgs) error
	MoveTask(ctx context.Context, id string, args todoist.MoveTaskArgs) error
	AddSection(ctx context.Context, name, projectID string) (*todoist.Section, error)
	Comments(ctx context.Context, taskID, projectID string) ([]todoist.Comment, error)
	Collaborators(ctx context.Context, projectID string) ([]todoist.Collaborator, error)
	ResolveProject(ctx context.Context, nameOrID string) (string, error)
	ResolveSection(ctx context.Context, projectID, nameOrID string) (string, error)
	ResolveAssignee(ctx context.Context, projectID, nameOrEmail string) (string, error)
}

var _ apiClient = (*todoist.Client)(nil)

// Wired dependencies. main calls Wire; tests assign directly.
var (
	authService driving.AuthService
	tokenStore  driven.TokenStore
	settings    driven.ConfigStore
	credentials driven.CredentialsSource

	newClient = func(token string) apiClient { return todoist.NewClient(token) }
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "todoist",
	Short:         "Todoist from the command line",
	Long:          "A Todoist client that lists, creates and updates tasks and prints API objects as JSON.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// Wire injects the production dependencies. The settings store may be
// nil when the config directory is unavailable; commands degrade.
func Wire(auth driving.AuthService, store driven.TokenStore, cfg driven.ConfigStore, creds driven.CredentialsSource) {
	authService = auth
	tokenStore = store
	settings = cfg
	credentials = creds
}

// SetVersion records the build's version string for the version and
// root commands.
func SetVersion(v string) {
	rootCmd.Version = v
	versionString = v
}

// apiFromStore builds an authenticated client, failing with setup
// guidance when no token is stored.
func apiFromStore(ctx context.Context) (apiClient, error) {
	token, err := tokenStore.Token(ctx)
	if err != nil {
		return nil, err
	}
	return newClient(token), nil
}

// Execute runs the command tree.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
