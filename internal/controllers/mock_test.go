package controllers

import (
	"github.com/stretchr/testify/mock"
	"github.com/tgienger/taskdesk/internal/models"
)

// mockStore satisfies TaskStore, ProjectStore and UserStore
type mockStore struct {
	mock.Mock
}

func tasksArg(args mock.Arguments, i int) []models.Task {
	if v := args.Get(i); v != nil {
		return v.([]models.Task)
	}
	return nil
}

func (m *mockStore) AddTask(t *models.Task) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GetTask(id int64) (*models.Task, error) {
	args := m.Called(id)
	t, _ := args.Get(0).(*models.Task)
	return t, args.Error(1)
}

func (m *mockStore) ListTasks() ([]models.Task, error) {
	args := m.Called()
	return tasksArg(args, 0), args.Error(1)
}

func (m *mockStore) UpdateTask(id int64, patch models.TaskPatch) (bool, error) {
	args := m.Called(id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) DeleteTask(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) SearchTasks(query string) ([]models.Task, error) {
	args := m.Called(query)
	return tasksArg(args, 0), args.Error(1)
}

func (m *mockStore) ListTasksByProject(projectID int64) ([]models.Task, error) {
	args := m.Called(projectID)
	return tasksArg(args, 0), args.Error(1)
}

func (m *mockStore) ListTasksByUser(userID int64) ([]models.Task, error) {
	args := m.Called(userID)
	return tasksArg(args, 0), args.Error(1)
}

func (m *mockStore) AddProject(p *models.Project) (int64, error) {
	args := m.Called(p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GetProject(id int64) (*models.Project, error) {
	args := m.Called(id)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func (m *mockStore) ListProjects() ([]models.Project, error) {
	args := m.Called()
	p, _ := args.Get(0).([]models.Project)
	return p, args.Error(1)
}

func (m *mockStore) UpdateProject(id int64, patch models.ProjectPatch) (bool, error) {
	args := m.Called(id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) DeleteProject(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) AddUser(u *models.User) (int64, error) {
	args := m.Called(u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GetUser(id int64) (*models.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockStore) ListUsers() ([]models.User, error) {
	args := m.Called()
	u, _ := args.Get(0).([]models.User)
	return u, args.Error(1)
}

func (m *mockStore) UpdateUser(id int64, patch models.UserPatch) (bool, error) {
	args := m.Called(id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) DeleteUser(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}
