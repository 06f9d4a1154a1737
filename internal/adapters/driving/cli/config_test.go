package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/config"
	"github.com/taskwise/todoist-cli/internal/adapters/driven/todoist"
	"github.com/taskwise/todoist-cli/internal/core/domain"
)

func wireSettings(t *testing.T) {
	t.Helper()
	prev := settings
	t.Cleanup(func() { settings = prev })
	s, err := config.OpenSettings(t.TempDir())
	require.NoError(t, err)
	settings = s
}

func TestConfigSetAndGet(t *testing.T) {
	wireFakes(t, &fakeAPI{})
	wireSettings(t)

	out, err := runCommand(t, "config", "set", "default_project", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, "default_project = Work")

	out, err = runCommand(t, "config", "get", "default_project")
	require.NoError(t, err)
	assert.Contains(t, out, "Work")
}

func TestConfigShowsPath(t *testing.T) {
	wireFakes(t, &fakeAPI{})
	wireSettings(t)

	out, err := runCommand(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, config.SettingsFileName)
}

func TestConfigUnavailable(t *testing.T) {
	wireFakes(t, &fakeAPI{})
	prev := settings
	t.Cleanup(func() { settings = prev })
	settings = nil

	_, err := runCommand(t, "config", "get", "default_project")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddUsesDefaultProject(t *testing.T) {
	api := &fakeAPI{
		projects: []todoist.Project{mkProject(t, `{"id": "p1", "name": "Work"}`)},
		task:     taskPtr(mkTask(t, `{"id": "t1", "content": "x", "project_id": "p1"}`)),
	}
	wireFakes(t, api)
	wireSettings(t)
	require.NoError(t, settings.Set(defaultProjectKey, "Work"))

	_, err := runCommand(t, "add", "x")
	require.NoError(t, err)
	require.Len(t, api.added, 1)
	assert.Equal(t, "p1", api.added[0].ProjectID)
}
