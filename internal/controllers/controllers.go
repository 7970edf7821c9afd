// Package controllers applies business rules on top of the persistence
// gateway. Validation failures are *models.ValidationError values, blocked
// deletes are reported with the sentinel errors below, and storage errors are
// returned exactly as the gateway produced them.
package controllers

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/tgienger/taskdesk/internal/models"
)

var (
	// ErrProjectHasTasks is returned when deleting a project that still has tasks.
	ErrProjectHasTasks = errors.New("project still has tasks; delete or move them first")
	// ErrUserHasTasks is returned when deleting a user that still has assigned tasks.
	ErrUserHasTasks = errors.New("user still has assigned tasks; reassign or delete them first")
	// ErrProjectNotFound is returned by operations that need an existing project.
	ErrProjectNotFound = errors.New("project not found")
)

// TaskStore is the persistence needed by TaskController
type TaskStore interface {
	AddTask(t *models.Task) (int64, error)
	GetTask(id int64) (*models.Task, error)
	ListTasks() ([]models.Task, error)
	UpdateTask(id int64, patch models.TaskPatch) (bool, error)
	DeleteTask(id int64) (bool, error)
	SearchTasks(query string) ([]models.Task, error)
	ListTasksByProject(projectID int64) ([]models.Task, error)
	ListTasksByUser(userID int64) ([]models.Task, error)
}

// ProjectStore is the persistence needed by ProjectController
type ProjectStore interface {
	AddProject(p *models.Project) (int64, error)
	GetProject(id int64) (*models.Project, error)
	ListProjects() ([]models.Project, error)
	UpdateProject(id int64, patch models.ProjectPatch) (bool, error)
	DeleteProject(id int64) (bool, error)
	ListTasksByProject(projectID int64) ([]models.Task, error)
}

// UserStore is the persistence needed by UserController
type UserStore interface {
	AddUser(u *models.User) (int64, error)
	GetUser(id int64) (*models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUser(id int64, patch models.UserPatch) (bool, error)
	DeleteUser(id int64) (bool, error)
	ListTasksByUser(userID int64) ([]models.Task, error)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// notBefore rejects dates earlier than now
func notBefore(field string, value, now time.Time) error {
	if value.Before(now) {
		return &models.ValidationError{
			Field:   field,
			Value:   value.Format(time.DateTime),
			Message: "must not be in the past",
		}
	}
	return nil
}
