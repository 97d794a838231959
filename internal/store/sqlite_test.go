package store

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := NewMemorySQLite()
	if err != nil {
		t.Fatalf("new memory sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteMigration(t *testing.T) {
	db := newTestSQLite(t)

	var version int
	db.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
	if err := db.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestSQLiteReadBeforeWrite(t *testing.T) {
	db := newTestSQLite(t)
	if _, err := db.Read(); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestSQLiteWriteRead(t *testing.T) {
	db := newTestSQLite(t)
	snap := Snapshot{
		Active: []Task{
			{Name: "B", DueDate: "2025-01-02", DueTime: "10:00"},
			{Name: "A", DueDate: "2025-01-01", DueTime: "09:00"},
		},
		Completed: []Task{{Name: "C", DueDate: "2024-12-01", DueTime: "23:59"}},
	}
	if err := db.Write(snap); err != nil {
		t.Fatal(err)
	}

	got, err := db.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Active) != 2 || len(got.Completed) != 1 {
		t.Fatalf("unexpected sizes %d/%d", len(got.Active), len(got.Completed))
	}
	// Stored order survives.
	if got.Active[0].Name != "B" || got.Active[1].Name != "A" {
		t.Fatalf("order not preserved: %+v", got.Active)
	}

	if err := db.Write(Snapshot{}); err != nil {
		t.Fatal(err)
	}
	got, err = db.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Active) != 0 || len(got.Completed) != 0 {
		t.Fatal("write should replace the previous snapshot")
	}
}

func TestStoreOnSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "tasks.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(db, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	s.Add("Pay rent", "2025-01-01", "09:00")
	s.Complete(0)
	s.Close()

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err = New(db)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if len(s.Active()) != 0 || len(s.Completed()) != 1 {
		t.Fatal("expected one completed task after reopen")
	}
	if s.Completed()[0].DueTime != "09:00" {
		t.Fatalf("unexpected task %+v", s.Completed()[0])
	}
}
