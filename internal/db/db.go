package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// DB wraps the database connection. It is the only writer of the store.
type DB struct {
	*sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

// New opens the database at path and initializes the schema. An empty path
// uses DefaultPath.
func New(path string, logger *slog.Logger) (*DB, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if path != MemoryPath {
		if err := ensureDir(path); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	db := Wrap(conn, logger)
	if _, err := db.Exec(schema); err != nil {
		conn.Close()
		return nil, err
	}
	db.logger.Info("database opened", slog.String("path", path))

	return db, nil
}

// Wrap adopts an open handle without touching the schema. All work runs on a
// single connection, which also keeps an in-memory database alive.
func Wrap(conn *sql.DB, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	return &DB{
		DB:     sqlx.NewDb(conn, "sqlite3"),
		logger: logger,
		now:    time.Now,
	}
}

// DefaultPath returns the path to the database file
func DefaultPath() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataDir, "taskdesk", "taskdesk.db"), nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// stamp returns the server-side timestamp for a new row
func (db *DB) stamp() time.Time {
	return db.now().UTC()
}

// exec runs a built statement and reports whether any row changed
func (db *DB) exec(b sq.Sqlizer) (bool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return false, err
	}
	result, err := db.Exec(query, args...)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// insert runs an insert statement and returns the new row id
func (db *DB) insert(b sq.InsertBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// get scans a single row into dest and reports whether it existed
func (db *DB) get(dest any, b sq.SelectBuilder) (bool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return false, err
	}
	err = db.Get(dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (db *DB) list(dest any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return db.Select(dest, query, args...)
}

// GetSetting retrieves a setting value by key
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting sets a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
