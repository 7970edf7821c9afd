package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/taskdesk/internal/db"
	"github.com/tgienger/taskdesk/internal/models"
)

func TestProjectLifecycle(t *testing.T) {
	store, err := db.New(db.MemoryPath, nil)
	require.NoError(t, err)
	defer store.Close()

	users := NewUserController(store, nil)
	projects := NewProjectController(store, nil)
	tasks := NewTaskController(store, nil)

	aliceID, err := users.AddUser("alice", "alice@x.com", models.RoleDeveloper)
	require.NoError(t, err)

	start := time.Now().AddDate(0, 0, 1)
	projectID, err := projects.AddProject("P1", "", start, start.AddDate(0, 0, 30))
	require.NoError(t, err)

	taskID, err := tasks.AddTask("T1", "", models.PriorityHigh, time.Now().AddDate(0, 0, 7), &projectID, &aliceID)
	require.NoError(t, err)

	progress, err := projects.GetProjectProgress(projectID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress)

	changed, err := tasks.UpdateTaskStatus(taskID, models.TaskCompleted)
	require.NoError(t, err)
	assert.True(t, changed)

	progress, err = projects.GetProjectProgress(projectID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress)

	assigned, err := users.GetUserTasks(aliceID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, taskID, assigned[0].ID)

	_, err = projects.DeleteProject(projectID)
	assert.ErrorIs(t, err, ErrProjectHasTasks)
	_, err = users.DeleteUser(aliceID)
	assert.ErrorIs(t, err, ErrUserHasTasks)

	deleted, err := tasks.DeleteTask(taskID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = projects.DeleteProject(projectID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = users.DeleteUser(aliceID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = projects.GetProjectProgress(projectID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSearchAndOverdueOnStore(t *testing.T) {
	store, err := db.New(db.MemoryPath, nil)
	require.NoError(t, err)
	defer store.Close()

	c := NewTaskController(store, nil)
	now := time.Now()

	_, err = c.AddTask("Quarterly report", "", models.PriorityMedium, now.Add(time.Hour), nil, nil)
	require.NoError(t, err)
	_, err = c.AddTask("Review", "read the REPORT draft", models.PriorityLow, now.Add(2*time.Hour), nil, nil)
	require.NoError(t, err)

	found, err := c.SearchTasks("Report")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// move the clock forward so the first task is past due
	c.Now = func() time.Time { return now.Add(90 * time.Minute) }
	overdue, err := c.GetOverdueTasks()
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Quarterly report", overdue[0].Title)
}
