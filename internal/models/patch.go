package models

import (
	"database/sql"
	"time"
)

// UserPatch holds the user fields to change. Nil fields are left alone.
type UserPatch struct {
	Username *string
	Email    *string
	Role     *Role
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Role == nil
}

// Columns maps the supplied fields to their column names
func (p UserPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Username != nil {
		cols["username"] = *p.Username
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Role != nil {
		cols["role"] = string(*p.Role)
	}
	return cols
}

// ProjectPatch holds the project fields to change. Nil fields are left alone.
type ProjectPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *ProjectStatus
}

func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Status == nil
}

func (p ProjectPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = nullString(*p.Description)
	}
	if p.StartDate != nil {
		cols["start_date"] = p.StartDate.UTC()
	}
	if p.EndDate != nil {
		cols["end_date"] = p.EndDate.UTC()
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	return cols
}

// TaskPatch holds the task fields to change. Nil fields are left alone; a
// reference set to an invalid NullInt64 clears it.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *TaskStatus
	DueDate     *time.Time
	ProjectID   *sql.NullInt64
	AssigneeID  *sql.NullInt64
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Status == nil && p.DueDate == nil && p.ProjectID == nil && p.AssigneeID == nil
}

func (p TaskPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = nullString(*p.Description)
	}
	if p.Priority != nil {
		cols["priority"] = int(*p.Priority)
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.DueDate != nil {
		cols["due_date"] = p.DueDate.UTC()
	}
	if p.ProjectID != nil {
		cols["project_id"] = *p.ProjectID
	}
	if p.AssigneeID != nil {
		cols["assignee_id"] = *p.AssigneeID
	}
	return cols
}

// Ref wraps an id for use in a TaskPatch reference field
func Ref(id int64) *sql.NullInt64 {
	return &sql.NullInt64{Int64: id, Valid: true}
}

// NoRef clears a reference in a TaskPatch
func NoRef() *sql.NullInt64 {
	return &sql.NullInt64{}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
