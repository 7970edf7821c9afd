package controllers

import (
	"log/slog"
	"math"
	"time"

	"github.com/tgienger/taskdesk/internal/models"
)

type ProjectController struct {
	store  ProjectStore
	logger *slog.Logger

	// Now is the clock used to reject past start dates
	Now func() time.Time
}

func NewProjectController(store ProjectStore, logger *slog.Logger) *ProjectController {
	return &ProjectController{store: store, logger: orDiscard(logger), Now: time.Now}
}

// AddProject validates the date range and stores a new active project
func (c *ProjectController) AddProject(name, description string, start, end time.Time) (int64, error) {
	if err := models.ValidateDateRange(start, end); err != nil {
		c.logger.Debug("project rejected", slog.String("error", err.Error()))
		return 0, err
	}
	if err := notBefore("start_date", start, c.Now()); err != nil {
		c.logger.Debug("project rejected", slog.String("error", err.Error()))
		return 0, err
	}

	project, err := models.NewProject(name, description, start, end)
	if err != nil {
		return 0, err
	}
	return c.store.AddProject(project)
}

// GetProject returns nil when no project has the ID
func (c *ProjectController) GetProject(id int64) (*models.Project, error) {
	return c.store.GetProject(id)
}

func (c *ProjectController) GetAllProjects() ([]models.Project, error) {
	return c.store.ListProjects()
}

// UpdateProject checks the status and, when both dates are supplied
// together, their order
func (c *ProjectController) UpdateProject(id int64, patch models.ProjectPatch) (bool, error) {
	if patch.Status != nil {
		if err := models.ValidateProjectStatus(*patch.Status); err != nil {
			return false, err
		}
	}
	if patch.StartDate != nil && patch.EndDate != nil {
		if err := models.ValidateDateRange(*patch.StartDate, *patch.EndDate); err != nil {
			return false, err
		}
	}
	return c.store.UpdateProject(id, patch)
}

func (c *ProjectController) UpdateProjectStatus(id int64, status models.ProjectStatus) (bool, error) {
	if err := models.ValidateProjectStatus(status); err != nil {
		return false, err
	}
	return c.store.UpdateProject(id, models.ProjectPatch{Status: &status})
}

// DeleteProject refuses to delete a project that still has tasks
func (c *ProjectController) DeleteProject(id int64) (bool, error) {
	tasks, err := c.store.ListTasksByProject(id)
	if err != nil {
		return false, err
	}
	if len(tasks) > 0 {
		c.logger.Info("project delete blocked", slog.Int64("project_id", id), slog.Int("tasks", len(tasks)))
		return false, ErrProjectHasTasks
	}
	return c.store.DeleteProject(id)
}

// GetProjectProgress returns the percentage of completed tasks rounded to two
// decimals, or 0 for a project without tasks
func (c *ProjectController) GetProjectProgress(id int64) (float64, error) {
	project, err := c.store.GetProject(id)
	if err != nil {
		return 0, err
	}
	if project == nil {
		return 0, ErrProjectNotFound
	}

	tasks, err := c.store.ListTasksByProject(id)
	if err != nil {
		return 0, err
	}
	return progress(tasks), nil
}

func progress(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0.0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == models.TaskCompleted {
			completed++
		}
	}
	pct := 100 * float64(completed) / float64(len(tasks))
	return math.Round(pct*100) / 100
}
