package models

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User represents a person that can be assigned tasks
type User struct {
	ID           int64
	Username     string
	Email        string
	Role         Role
	RegisteredAt time.Time
}

// Project groups tasks between a start and end date
type Project struct {
	ID          int64
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      ProjectStatus
	CreatedAt   time.Time
}

// Task represents a single unit of work
type Task struct {
	ID          int64
	Title       string
	Description string
	Priority    Priority
	Status      TaskStatus
	DueDate     time.Time
	ProjectID   *int64 // nil if not part of a project
	AssigneeID  *int64 // nil if unassigned
	CreatedAt   time.Time
}

// ValidateEmail checks the local@domain.tld shape
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return invalid("email", email, "expected local@domain.tld")
	}
	return nil
}

func ValidateRole(role Role) error {
	if !role.Valid() {
		return invalid("role", role, "must be one of %s", joinValues(Roles))
	}
	return nil
}

func ValidateProjectStatus(status ProjectStatus) error {
	if !status.Valid() {
		return invalid("status", status, "must be one of %s", joinValues(ProjectStatuses))
	}
	return nil
}

func ValidateTaskStatus(status TaskStatus) error {
	if !status.Valid() {
		return invalid("status", status, "must be one of %s", joinValues(TaskStatuses))
	}
	return nil
}

func ValidatePriority(p Priority) error {
	if !p.Valid() {
		return invalid("priority", int(p), "must be 1, 2 or 3")
	}
	return nil
}

// ValidateDateRange requires end to be strictly after start
func ValidateDateRange(start, end time.Time) error {
	if !end.After(start) {
		return invalid("end_date", end.Format(time.DateOnly), "must be after start date %s", start.Format(time.DateOnly))
	}
	return nil
}

// NewUser creates an unsaved user after checking email and role
func NewUser(username, email string, role Role) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidateRole(role); err != nil {
		return nil, err
	}
	return &User{
		Username:     username,
		Email:        email,
		Role:         role,
		RegisteredAt: time.Now(),
	}, nil
}

// UpdateInfo applies the non-nil fields of patch. Nothing is changed if any
// supplied value is invalid.
func (u *User) UpdateInfo(patch UserPatch) error {
	if patch.Email != nil {
		if err := ValidateEmail(*patch.Email); err != nil {
			return err
		}
	}
	if patch.Role != nil {
		if err := ValidateRole(*patch.Role); err != nil {
			return err
		}
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return nil
}

func (u *User) ToMap() map[string]any {
	return map[string]any{
		"id":                idOrNil(u.ID),
		"username":          u.Username,
		"email":             u.Email,
		"role":              string(u.Role),
		"registration_date": u.RegisteredAt,
	}
}

// NewProject creates an unsaved active project
func NewProject(name, description string, start, end time.Time) (*Project, error) {
	if err := ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	return &Project{
		Name:        name,
		Description: description,
		StartDate:   start,
		EndDate:     end,
		Status:      ProjectActive,
		CreatedAt:   time.Now(),
	}, nil
}

// UpdateStatus sets the status and reports whether it was accepted
func (p *Project) UpdateStatus(status ProjectStatus) bool {
	if !status.Valid() {
		return false
	}
	p.Status = status
	return true
}

// Progress is always zero on a bare entity; see ProjectController.GetProjectProgress.
func (p *Project) Progress() float64 {
	return 0.0
}

func (p *Project) ToMap() map[string]any {
	return map[string]any{
		"id":          idOrNil(p.ID),
		"name":        p.Name,
		"description": p.Description,
		"start_date":  p.StartDate,
		"end_date":    p.EndDate,
		"status":      string(p.Status),
		"created_at":  p.CreatedAt,
		"progress":    p.Progress(),
	}
}

// NewTask creates an unsaved pending task
func NewTask(title, description string, priority Priority, due time.Time, projectID, assigneeID *int64) (*Task, error) {
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}
	return &Task{
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      TaskPending,
		DueDate:     due,
		ProjectID:   projectID,
		AssigneeID:  assigneeID,
		CreatedAt:   time.Now(),
	}, nil
}

// UpdateStatus sets the status and reports whether it was accepted
func (t *Task) UpdateStatus(status TaskStatus) bool {
	if !status.Valid() {
		return false
	}
	t.Status = status
	return true
}

// IsOverdue reports whether now is past the due date. Status is not considered.
func (t *Task) IsOverdue(now time.Time) bool {
	return now.After(t.DueDate)
}

func (t *Task) Overdue() bool {
	return t.IsOverdue(time.Now())
}

func (t *Task) ToMap() map[string]any {
	return map[string]any{
		"id":          idOrNil(t.ID),
		"title":       t.Title,
		"description": t.Description,
		"priority":    int(t.Priority),
		"status":      string(t.Status),
		"due_date":    t.DueDate,
		"project_id":  refOrNil(t.ProjectID),
		"assignee_id": refOrNil(t.AssigneeID),
		"created_at":  t.CreatedAt,
		"is_overdue":  t.Overdue(),
	}
}

func idOrNil(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func refOrNil(ref *int64) any {
	if ref == nil {
		return nil
	}
	return *ref
}
