package store

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

const (
	listActive    = "active"
	listCompleted = "completed"
)

// SQLite keeps the snapshot in a database instead of a JSON file. A save
// replaces every row inside one transaction.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at dbPath and runs migrations.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemorySQLite creates an in-memory database for testing.
func NewMemorySQLite() (*SQLite, error) {
	return OpenSQLite(":memory:")
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *SQLite) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS tasks (
		list      TEXT NOT NULL CHECK (list IN ('active', 'completed')),
		position  INTEGER NOT NULL,
		name      TEXT NOT NULL,
		due_date  TEXT NOT NULL,
		due_time  TEXT NOT NULL DEFAULT '23:59',
		PRIMARY KEY (list, position)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLite) Read() (Snapshot, error) {
	var savedAt string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'saved_at'`).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return Snapshot{}, fmt.Errorf("read tasks: %w", fs.ErrNotExist)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read saved_at: %w", err)
	}

	rows, err := s.db.Query(`SELECT list, name, due_date, due_time FROM tasks ORDER BY list, position`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	snap := Snapshot{Active: []Task{}, Completed: []Task{}}
	for rows.Next() {
		var list string
		var t Task
		if err := rows.Scan(&list, &t.Name, &t.DueDate, &t.DueTime); err != nil {
			return Snapshot{}, err
		}
		switch list {
		case listActive:
			snap.Active = append(snap.Active, t)
		case listCompleted:
			snap.Completed = append(snap.Completed, t)
		}
	}
	return snap, rows.Err()
}

func (s *SQLite) Write(snap Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (list, position, name, due_date, due_time) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for list, tasks := range map[string][]Task{listActive: snap.Active, listCompleted: snap.Completed} {
		for i, t := range tasks {
			if _, err := stmt.Exec(list, i, t.Name, t.DueDate, t.DueTime); err != nil {
				return fmt.Errorf("insert task %q: %w", t.Name, err)
			}
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES ('saved_at', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		now,
	); err != nil {
		return fmt.Errorf("update saved_at: %w", err)
	}

	return tx.Commit()
}
