package models

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())
	assert.True(t, ProjectPatch{}.IsEmpty())
	assert.True(t, TaskPatch{}.IsEmpty())

	name := "x"
	assert.False(t, UserPatch{Username: &name}.IsEmpty())
	assert.False(t, ProjectPatch{Name: &name}.IsEmpty())
	assert.False(t, TaskPatch{AssigneeID: NoRef()}.IsEmpty())
}

func TestTaskPatchColumns(t *testing.T) {
	status := TaskCompleted
	priority := PriorityLow
	due := time.Date(2030, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))

	cols := TaskPatch{
		Status:     &status,
		Priority:   &priority,
		DueDate:    &due,
		ProjectID:  Ref(7),
		AssigneeID: NoRef(),
	}.Columns()

	assert.Equal(t, map[string]any{
		"status":      "completed",
		"priority":    3,
		"due_date":    due.UTC(),
		"project_id":  sql.NullInt64{Int64: 7, Valid: true},
		"assignee_id": sql.NullInt64{},
	}, cols)
}

func TestProjectPatchColumns(t *testing.T) {
	empty := ""
	status := ProjectOnHold

	cols := ProjectPatch{Description: &empty, Status: &status}.Columns()

	assert.Len(t, cols, 2)
	assert.Equal(t, sql.NullString{}, cols["description"], "blank description is stored as NULL")
	assert.Equal(t, "on_hold", cols["status"])
}

func TestUserPatchColumns(t *testing.T) {
	role := RoleManager
	assert.Equal(t, map[string]any{"role": "manager"}, UserPatch{Role: &role}.Columns())
}
