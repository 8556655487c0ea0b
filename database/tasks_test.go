package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProject(t *testing.T, store *ProjectStore, name string) Project {
	t.Helper()

	project := Project{Name: name}
	require.NoError(t, store.Create(&project))
	return project
}

func TestTaskStoreTagsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectStore(db)
	tasks := NewTaskStore(db)

	project := newTestProject(t, projects, "Launch")

	task := Task{
		ProjectID: project.ID,
		Title:     "Ship",
		Status:    StatusToDo,
		Tags:      []string{"release", "urgent"},
	}
	require.NoError(t, tasks.Create(&task))

	list, err := tasks.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"release", "urgent"}, list[0].Tags)

	// Empty tags come back as an empty list, not nil
	bare := Task{ProjectID: project.ID, Title: "Untagged", Status: StatusToDo}
	require.NoError(t, tasks.Create(&bare))

	list, err = tasks.List()
	require.NoError(t, err)
	for _, got := range list {
		assert.NotNil(t, got.Tags)
	}
}

func TestTaskStoreMissingProject(t *testing.T) {
	tasks := NewTaskStore(newTestDB(t))

	task := Task{ProjectID: "missing", Title: "Orphan", Status: StatusToDo}
	assert.ErrorIs(t, tasks.Create(&task), ErrMissingReference)
}

func TestTaskStoreUnknownID(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectStore(db)
	tasks := NewTaskStore(db)

	project := newTestProject(t, projects, "Launch")

	update := Task{ID: "missing", ProjectID: project.ID, Title: "x", Status: StatusToDo}
	assert.ErrorIs(t, tasks.Update(&update), ErrNotFound)
	assert.ErrorIs(t, tasks.Delete("missing"), ErrNotFound)
}

func TestProjectDeleteCascadesTasks(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectStore(db)
	tasks := NewTaskStore(db)

	doomed := newTestProject(t, projects, "Doomed")
	kept := newTestProject(t, projects, "Kept")

	for _, p := range []Project{doomed, doomed, kept} {
		task := Task{ProjectID: p.ID, Title: "Work", Status: StatusInProgress}
		require.NoError(t, tasks.Create(&task))
	}

	require.NoError(t, projects.Delete(doomed.ID))

	remaining, err := tasks.List()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ProjectID)
}

func TestProjectDeleteWithoutTasks(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectStore(db)
	tasks := NewTaskStore(db)

	empty := newTestProject(t, projects, "Empty")
	require.NoError(t, projects.Delete(empty.ID))

	remaining, err := tasks.List()
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestTaskStoreFindDue(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectStore(db)
	tasks := NewTaskStore(db)

	project := newTestProject(t, projects, "Launch")

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour).Format("2006-01-02")
	dayAfter := now.Add(48 * time.Hour).Format("2006-01-02")

	for _, tc := range []struct {
		title    string
		deadline string
	}{
		{"Due tomorrow", tomorrow},
		{"Also due tomorrow", tomorrow},
		{"Due later", dayAfter},
		{"No deadline", ""},
	} {
		task := Task{ProjectID: project.ID, Title: tc.title, Status: StatusToDo, Deadline: tc.deadline}
		require.NoError(t, tasks.Create(&task))
	}

	due, err := tasks.FindDue(tomorrow)
	require.NoError(t, err)
	require.Len(t, due, 2)

	titles := []string{due[0].Title, due[1].Title}
	assert.ElementsMatch(t, []string{"Due tomorrow", "Also due tomorrow"}, titles)
	for _, d := range due {
		require.NotNil(t, d.ProjectName)
		assert.Equal(t, "Launch", *d.ProjectName)
	}

	none, err := tasks.FindDue("2030-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)
}
