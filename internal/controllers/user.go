package controllers

import (
	"log/slog"

	"github.com/tgienger/taskdesk/internal/models"
)

type UserController struct {
	store  UserStore
	logger *slog.Logger
}

func NewUserController(store UserStore, logger *slog.Logger) *UserController {
	return &UserController{store: store, logger: orDiscard(logger)}
}

// AddUser validates role and email and stores the user. Duplicate usernames
// or emails come back as storage errors.
func (c *UserController) AddUser(username, email string, role models.Role) (int64, error) {
	if err := models.ValidateRole(role); err != nil {
		c.logger.Debug("user rejected", slog.String("error", err.Error()))
		return 0, err
	}

	user, err := models.NewUser(username, email, role)
	if err != nil {
		c.logger.Debug("user rejected", slog.String("error", err.Error()))
		return 0, err
	}
	return c.store.AddUser(user)
}

// GetUser returns nil when no user has the ID
func (c *UserController) GetUser(id int64) (*models.User, error) {
	return c.store.GetUser(id)
}

func (c *UserController) GetAllUsers() ([]models.User, error) {
	return c.store.ListUsers()
}

// UpdateUser checks the role and email in patch before writing it
func (c *UserController) UpdateUser(id int64, patch models.UserPatch) (bool, error) {
	if patch.Role != nil {
		if err := models.ValidateRole(*patch.Role); err != nil {
			return false, err
		}
	}
	if patch.Email != nil {
		// a scratch user runs the same email check as construction
		if _, err := models.NewUser("scratch", *patch.Email, models.RoleDeveloper); err != nil {
			return false, err
		}
	}
	return c.store.UpdateUser(id, patch)
}

// DeleteUser refuses to delete a user that still has assigned tasks
func (c *UserController) DeleteUser(id int64) (bool, error) {
	tasks, err := c.store.ListTasksByUser(id)
	if err != nil {
		return false, err
	}
	if len(tasks) > 0 {
		c.logger.Info("user delete blocked", slog.Int64("user_id", id), slog.Int("tasks", len(tasks)))
		return false, ErrUserHasTasks
	}
	return c.store.DeleteUser(id)
}

// GetUserTasks returns the tasks assigned to a user
func (c *UserController) GetUserTasks(id int64) ([]models.Task, error) {
	return c.store.ListTasksByUser(id)
}
