package controllers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/tgienger/taskdesk/internal/models"
)

type TaskController struct {
	store  TaskStore
	logger *slog.Logger

	// Now is the clock used for due date checks and overdue filtering
	Now func() time.Time
}

func NewTaskController(store TaskStore, logger *slog.Logger) *TaskController {
	return &TaskController{store: store, logger: orDiscard(logger), Now: time.Now}
}

// AddTask validates and stores a new pending task, returning its ID
func (c *TaskController) AddTask(title, description string, priority models.Priority, due time.Time, projectID, assigneeID *int64) (int64, error) {
	if err := models.ValidatePriority(priority); err != nil {
		c.logger.Debug("task rejected", slog.String("error", err.Error()))
		return 0, err
	}
	if err := notBefore("due_date", due, c.Now()); err != nil {
		c.logger.Debug("task rejected", slog.String("error", err.Error()))
		return 0, err
	}

	task, err := models.NewTask(title, description, priority, due, projectID, assigneeID)
	if err != nil {
		return 0, err
	}
	return c.store.AddTask(task)
}

// GetTask returns nil when no task has the ID
func (c *TaskController) GetTask(id int64) (*models.Task, error) {
	return c.store.GetTask(id)
}

func (c *TaskController) GetAllTasks() ([]models.Task, error) {
	return c.store.ListTasks()
}

// UpdateTask checks priority and status before writing the patch
func (c *TaskController) UpdateTask(id int64, patch models.TaskPatch) (bool, error) {
	if patch.Priority != nil {
		if err := models.ValidatePriority(*patch.Priority); err != nil {
			return false, err
		}
	}
	if patch.Status != nil {
		if err := models.ValidateTaskStatus(*patch.Status); err != nil {
			return false, err
		}
	}
	return c.store.UpdateTask(id, patch)
}

// UpdateTaskStatus moves a task to any known status
func (c *TaskController) UpdateTaskStatus(id int64, status models.TaskStatus) (bool, error) {
	if err := models.ValidateTaskStatus(status); err != nil {
		return false, err
	}
	return c.store.UpdateTask(id, models.TaskPatch{Status: &status})
}

func (c *TaskController) DeleteTask(id int64) (bool, error) {
	return c.store.DeleteTask(id)
}

// SearchTasks matches title or description. A blank query returns nothing
// without reaching the store.
func (c *TaskController) SearchTasks(query string) ([]models.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Task{}, nil
	}
	return c.store.SearchTasks(query)
}

// GetOverdueTasks returns every task whose due date has passed, whatever its status
func (c *TaskController) GetOverdueTasks() ([]models.Task, error) {
	tasks, err := c.store.ListTasks()
	if err != nil {
		return nil, err
	}

	now := c.Now()
	overdue := []models.Task{}
	for _, t := range tasks {
		if t.IsOverdue(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}

func (c *TaskController) GetTasksByProject(projectID int64) ([]models.Task, error) {
	return c.store.ListTasksByProject(projectID)
}

func (c *TaskController) GetTasksByUser(userID int64) ([]models.Task, error) {
	return c.store.ListTasksByUser(userID)
}
