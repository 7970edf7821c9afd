package db

import (
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tgienger/taskdesk/internal/models"
)

var taskColumns = []string{
	"id", "title", "description", "priority", "status",
	"due_date", "project_id", "assignee_id", "created_at",
}

type taskRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Priority    int            `db:"priority"`
	Status      sql.NullString `db:"status"`
	DueDate     time.Time      `db:"due_date"`
	ProjectID   sql.NullInt64  `db:"project_id"`
	AssigneeID  sql.NullInt64  `db:"assignee_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

// toModel restores a stored task. Due dates in the past are kept as is.
func (r taskRow) toModel() models.Task {
	status := models.TaskPending
	if r.Status.Valid {
		status = models.TaskStatus(r.Status.String)
	}
	return models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description.String,
		Priority:    models.Priority(r.Priority),
		Status:      status,
		DueDate:     r.DueDate,
		ProjectID:   refPtr(r.ProjectID),
		AssigneeID:  refPtr(r.AssigneeID),
		CreatedAt:   r.CreatedAt,
	}
}

func refPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}

func refArg(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func selectTasks() sq.SelectBuilder {
	return psql.Select(taskColumns...).From("tasks")
}

func (db *DB) listTasks(b sq.SelectBuilder) ([]models.Task, error) {
	var rows []taskRow
	if err := db.list(&rows, b.OrderBy("created_at DESC", "id DESC")); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, len(rows))
	for i, r := range rows {
		tasks[i] = r.toModel()
	}
	return tasks, nil
}

// AddTask inserts a task and fills in its ID and creation time
func (db *DB) AddTask(t *models.Task) (int64, error) {
	created := db.stamp()
	id, err := db.insert(psql.Insert("tasks").
		Columns("title", "description", "priority", "status", "due_date", "project_id", "assignee_id", "created_at").
		Values(t.Title, nullString(t.Description), int(t.Priority), string(t.Status),
			t.DueDate.UTC(), refArg(t.ProjectID), refArg(t.AssigneeID), created))
	if err != nil {
		return 0, err
	}

	t.ID = id
	t.CreatedAt = created
	return id, nil
}

// GetTask retrieves a task by ID, or nil if there is none
func (db *DB) GetTask(id int64) (*models.Task, error) {
	var row taskRow
	found, err := db.get(&row, selectTasks().Where(sq.Eq{"id": id}))
	if err != nil || !found {
		return nil, err
	}
	t := row.toModel()
	return &t, nil
}

// ListTasks returns all tasks, newest first
func (db *DB) ListTasks() ([]models.Task, error) {
	return db.listTasks(selectTasks())
}

// ListTasksByProject returns the tasks of a project, newest first
func (db *DB) ListTasksByProject(projectID int64) ([]models.Task, error) {
	return db.listTasks(selectTasks().Where(sq.Eq{"project_id": projectID}))
}

// ListTasksByUser returns the tasks assigned to a user, newest first
func (db *DB) ListTasksByUser(userID int64) ([]models.Task, error) {
	return db.listTasks(selectTasks().Where(sq.Eq{"assignee_id": userID}))
}

// SearchTasks returns tasks whose title or description contains query.
// SQLite's LIKE ignores ASCII case.
func (db *DB) SearchTasks(query string) ([]models.Task, error) {
	pattern := "%" + escapeLike(query) + "%"
	return db.listTasks(selectTasks().Where(sq.Or{
		sq.Expr(`title LIKE ? ESCAPE '\'`, pattern),
		sq.Expr(`description LIKE ? ESCAPE '\'`, pattern),
	}))
}

// UpdateTask writes the fields set in patch. An empty patch changes nothing.
func (db *DB) UpdateTask(id int64, patch models.TaskPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, nil
	}
	return db.exec(psql.Update("tasks").SetMap(patch.Columns()).Where(sq.Eq{"id": id}))
}

// DeleteTask deletes a task
func (db *DB) DeleteTask(id int64) (bool, error) {
	return db.exec(psql.Delete("tasks").Where(sq.Eq{"id": id}))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
