package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@x.com", true},
		{"first.last+tag@mail.example.org", true},
		{"under_score%@sub-domain.io", true},
		{"UPPER@EXAMPLE.COM", true},
		{"no-at-sign.com", false},
		{"alice@", false},
		{"@example.com", false},
		{"alice@example", false},
		{"alice@example.c", false},
		{"alice@example.c0m", false},
		{"alice smith@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			u, err := NewUser("alice", tt.email, RoleDeveloper)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.email, u.Email)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "email", verr.Field)
			assert.Equal(t, tt.email, verr.Value)
		})
	}
}

func TestNewUserRole(t *testing.T) {
	for _, role := range Roles {
		u, err := NewUser("bob", "bob@example.com", role)
		require.NoError(t, err)
		assert.Equal(t, role, u.Role)
		assert.Zero(t, u.ID)
		assert.False(t, u.RegisteredAt.IsZero())
	}

	_, err := NewUser("bob", "bob@example.com", Role("owner"))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "role", verr.Field)
	assert.Contains(t, err.Error(), "owner")
}

func TestUserUpdateInfo(t *testing.T) {
	u, err := NewUser("carol", "carol@example.com", RoleManager)
	require.NoError(t, err)

	name := "caroline"
	bad := "not-an-email"
	err = u.UpdateInfo(UserPatch{Username: &name, Email: &bad})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "carol", u.Username, "nothing changes when a field is rejected")

	role := RoleAdmin
	email := "caroline@example.com"
	require.NoError(t, u.UpdateInfo(UserPatch{Username: &name, Email: &email, Role: &role}))
	assert.Equal(t, "caroline", u.Username)
	assert.Equal(t, email, u.Email)
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestNewProject(t *testing.T) {
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	p, err := NewProject("P1", "d", start, start.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, ProjectActive, p.Status)
	assert.Equal(t, 0.0, p.Progress())

	_, err = NewProject("P1", "d", start, start)
	assert.ErrorIs(t, err, ErrValidation, "equal dates are rejected")

	_, err = NewProject("P1", "d", start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProjectUpdateStatus(t *testing.T) {
	start := time.Now().Add(time.Hour)
	p, err := NewProject("P1", "", start, start.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, p.UpdateStatus(ProjectOnHold))
	assert.Equal(t, ProjectOnHold, p.Status)

	assert.False(t, p.UpdateStatus(ProjectStatus("archived")))
	assert.Equal(t, ProjectOnHold, p.Status)

	// any member is reachable from any other
	assert.True(t, p.UpdateStatus(ProjectCompleted))
	assert.True(t, p.UpdateStatus(ProjectActive))
}

func TestNewTask(t *testing.T) {
	due := time.Now().Add(7 * 24 * time.Hour)
	projectID := int64(3)

	task, err := NewTask("T1", "d", PriorityHigh, due, &projectID, nil)
	require.NoError(t, err)
	assert.Equal(t, TaskPending, task.Status)
	assert.Equal(t, &projectID, task.ProjectID)
	assert.Nil(t, task.AssigneeID)

	for _, p := range []Priority{0, 4, -1} {
		_, err := NewTask("T1", "d", p, due, nil, nil)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "priority %d", p)
		assert.Equal(t, "priority", verr.Field)
	}

	// construction does not look at the clock
	_, err = NewTask("late", "", PriorityLow, time.Now().Add(-time.Hour), nil, nil)
	assert.NoError(t, err)
}

func TestTaskUpdateStatus(t *testing.T) {
	task, err := NewTask("T1", "", PriorityMedium, time.Now().Add(time.Hour), nil, nil)
	require.NoError(t, err)

	assert.False(t, task.UpdateStatus(TaskStatus("done")))
	assert.Equal(t, TaskPending, task.Status)

	assert.True(t, task.UpdateStatus(TaskCompleted))
	assert.True(t, task.UpdateStatus(TaskPending))
	assert.Equal(t, TaskPending, task.Status)
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	task := Task{DueDate: now.Add(-time.Minute), Status: TaskCompleted}

	assert.True(t, task.IsOverdue(now), "completed tasks past due still count")
	assert.False(t, task.IsOverdue(now.Add(-time.Hour)))
	assert.False(t, task.IsOverdue(task.DueDate), "due exactly now is not overdue")
}

func TestToMap(t *testing.T) {
	due := time.Now().Add(-time.Hour)
	assignee := int64(9)
	task, err := NewTask("T1", "d", PriorityLow, due, nil, &assignee)
	require.NoError(t, err)

	m := task.ToMap()
	assert.Nil(t, m["id"])
	assert.Nil(t, m["project_id"])
	assert.Equal(t, int64(9), m["assignee_id"])
	assert.Equal(t, 3, m["priority"])
	assert.Equal(t, "pending", m["status"])
	assert.Equal(t, true, m["is_overdue"])

	task.ID = 4
	assert.Equal(t, int64(4), task.ToMap()["id"])

	start := time.Now().Add(time.Hour)
	p, err := NewProject("P", "", start, start.Add(time.Hour))
	require.NoError(t, err)
	pm := p.ToMap()
	assert.Equal(t, 0.0, pm["progress"])
	assert.Equal(t, "active", pm["status"])

	u, err := NewUser("dave", "dave@example.com", RoleAdmin)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"id", "username", "email", "role", "registration_date"},
		keys(u.ToMap()))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
