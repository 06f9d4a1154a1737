package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/todoist"
)

func TestFilterTasks(t *testing.T) {
	old := mkTask(t, `{"id": "old", "created_at": "2020-01-01T00:00:00Z", "assignee_id": "u1"}`)
	recent := mkTask(t, `{"id": "recent", "created_at": "2030-01-01T00:00:00Z", "assignee_id": "u2"}`)
	undated := mkTask(t, `{"id": "undated", "assignee_id": "u1"}`)
	all := []todoist.Task{old, recent, undated}

	cutoff, err := time.Parse("2006-01-02", "2025-01-01")
	require.NoError(t, err)

	t.Run("no filters keeps everything", func(t *testing.T) {
		assert.Len(t, filterTasks(all, "", time.Time{}), 3)
	})

	t.Run("age cutoff", func(t *testing.T) {
		kept := filterTasks(all, "", cutoff)
		require.Len(t, kept, 1)
		assert.Equal(t, "old", kept[0].ID)
	})

	t.Run("undated tasks never match an age filter", func(t *testing.T) {
		kept := filterTasks([]todoist.Task{undated}, "", cutoff)
		assert.Empty(t, kept)
	})

	t.Run("tasks created during the cutoff day are kept", func(t *testing.T) {
		noon := mkTask(t, `{"id": "noon", "created_at": "2024-03-01T12:00:00Z"}`)
		dayCutoff, err := ageCutoff("2024-03-01", "")
		require.NoError(t, err)
		kept := filterTasks([]todoist.Task{noon}, "", dayCutoff)
		require.Len(t, kept, 1)
		assert.Equal(t, "noon", kept[0].ID)
	})

	t.Run("assignee", func(t *testing.T) {
		kept := filterTasks(all, "u1", time.Time{})
		require.Len(t, kept, 2)
		assert.Equal(t, "old", kept[0].ID)
		assert.Equal(t, "undated", kept[1].ID)
	})

	t.Run("assignee and age combined", func(t *testing.T) {
		kept := filterTasks(all, "u1", cutoff)
		require.Len(t, kept, 1)
		assert.Equal(t, "old", kept[0].ID)
	})
}
