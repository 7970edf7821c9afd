package db

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tgienger/taskdesk/internal/models"
)

var userColumns = []string{"id", "username", "email", "role", "registration_date"}

type userRow struct {
	ID               int64     `db:"id"`
	Username         string    `db:"username"`
	Email            string    `db:"email"`
	Role             string    `db:"role"`
	RegistrationDate time.Time `db:"registration_date"`
}

// toModel restores a stored user without re-running constructor checks
func (r userRow) toModel() models.User {
	return models.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		Role:         models.Role(r.Role),
		RegisteredAt: r.RegistrationDate,
	}
}

// AddUser inserts a user and fills in its ID and registration date
func (db *DB) AddUser(u *models.User) (int64, error) {
	registered := db.stamp()
	id, err := db.insert(psql.Insert("users").
		Columns("username", "email", "role", "registration_date").
		Values(u.Username, u.Email, string(u.Role), registered))
	if err != nil {
		return 0, err
	}

	u.ID = id
	u.RegisteredAt = registered
	return id, nil
}

// GetUser retrieves a user by ID, or nil if there is none
func (db *DB) GetUser(id int64) (*models.User, error) {
	var row userRow
	found, err := db.get(&row, psql.Select(userColumns...).From("users").Where(sq.Eq{"id": id}))
	if err != nil || !found {
		return nil, err
	}
	u := row.toModel()
	return &u, nil
}

// ListUsers returns all users, newest first
func (db *DB) ListUsers() ([]models.User, error) {
	var rows []userRow
	err := db.list(&rows, psql.Select(userColumns...).From("users").
		OrderBy("registration_date DESC", "id DESC"))
	if err != nil {
		return nil, err
	}

	users := make([]models.User, len(rows))
	for i, r := range rows {
		users[i] = r.toModel()
	}
	return users, nil
}

// UpdateUser writes the fields set in patch. An empty patch changes nothing.
func (db *DB) UpdateUser(id int64, patch models.UserPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, nil
	}
	return db.exec(psql.Update("users").SetMap(patch.Columns()).Where(sq.Eq{"id": id}))
}

// DeleteUser deletes a user
func (db *DB) DeleteUser(id int64) (bool, error) {
	return db.exec(psql.Delete("users").Where(sq.Eq{"id": id}))
}
