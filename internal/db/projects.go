package db

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tgienger/taskdesk/internal/models"
)

var projectColumns = []string{"id", "name", "description", "start_date", "end_date", "status", "created_at"}

type projectRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	StartDate   time.Time      `db:"start_date"`
	EndDate     time.Time      `db:"end_date"`
	Status      sql.NullString `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r projectRow) toModel() models.Project {
	status := models.ProjectActive
	if r.Status.Valid {
		status = models.ProjectStatus(r.Status.String)
	}
	return models.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      status,
		CreatedAt:   r.CreatedAt,
	}
}

// AddProject inserts a project and fills in its ID and creation time
func (db *DB) AddProject(p *models.Project) (int64, error) {
	created := db.stamp()
	id, err := db.insert(psql.Insert("projects").
		Columns("name", "description", "start_date", "end_date", "status", "created_at").
		Values(p.Name, nullString(p.Description), p.StartDate.UTC(), p.EndDate.UTC(), string(p.Status), created))
	if err != nil {
		return 0, err
	}

	p.ID = id
	p.CreatedAt = created
	return id, nil
}

// GetProject retrieves a project by ID, or nil if there is none
func (db *DB) GetProject(id int64) (*models.Project, error) {
	var row projectRow
	found, err := db.get(&row, psql.Select(projectColumns...).From("projects").Where(sq.Eq{"id": id}))
	if err != nil || !found {
		return nil, err
	}
	p := row.toModel()
	return &p, nil
}

// ListProjects returns all projects, newest first
func (db *DB) ListProjects() ([]models.Project, error) {
	var rows []projectRow
	err := db.list(&rows, psql.Select(projectColumns...).From("projects").
		OrderBy("created_at DESC", "id DESC"))
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, len(rows))
	for i, r := range rows {
		projects[i] = r.toModel()
	}
	return projects, nil
}

// UpdateProject writes the fields set in patch. An empty patch changes nothing.
func (db *DB) UpdateProject(id int64, patch models.ProjectPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, nil
	}
	return db.exec(psql.Update("projects").SetMap(patch.Columns()).Where(sq.Eq{"id": id}))
}

// DeleteProject deletes a project. Tasks still pointing at it make the
// foreign key check fail.
func (db *DB) DeleteProject(id int64) (bool, error) {
	return db.exec(psql.Delete("projects").Where(sq.Eq{"id": id}))
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
