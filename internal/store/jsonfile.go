package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// JSONFile stores the snapshot as {"tasks": [...], "complete": [...]}.
// No caching: every Read and Write goes to the file under a lock held on a
// sidecar "<path>.lock", so the lock survives the file being replaced.
type JSONFile struct {
	path string
	flk  *flock.Flock

	// writeTemp fills the temporary file before it replaces the store.
	writeTemp func(tmp *os.File, data []byte) error
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{
		path:      path,
		flk:       flock.New(path + ".lock"),
		writeTemp: writeAndSync,
	}
}

func (f *JSONFile) Path() string { return f.path }

func (f *JSONFile) Read() (Snapshot, error) {
	if _, err := os.Stat(f.path); err != nil {
		return Snapshot{}, fmt.Errorf("open task file: %w", err)
	}

	if err := f.flk.RLock(); err != nil {
		return Snapshot{}, fmt.Errorf("lock task file: %w", err)
	}
	data, err := os.ReadFile(f.path)
	f.flk.Unlock()
	if err != nil {
		return Snapshot{}, fmt.Errorf("read task file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		moved, merr := f.moveAside()
		if merr != nil {
			return Snapshot{}, fmt.Errorf("%w: %s: %v (keeping it in place: %v)", ErrCorrupt, f.path, err, merr)
		}
		return Snapshot{}, fmt.Errorf("%w: %s: %v (moved to %s)", ErrCorrupt, f.path, err, moved)
	}
	return snap, nil
}

// moveAside renames an unreadable store to <path>.corrupt.<timestamp> so the
// next save cannot overwrite what the user had.
func (f *JSONFile) moveAside() (string, error) {
	if err := f.flk.Lock(); err != nil {
		return "", err
	}
	defer f.flk.Unlock()

	moved := fmt.Sprintf("%s.corrupt.%s", f.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(f.path, moved); err != nil {
		return "", err
	}
	return moved, nil
}

// Write replaces the file atomically: the snapshot goes to a temporary file
// in the same directory, which is synced and then renamed over the store.
func (f *JSONFile) Write(snap Snapshot) error {
	data, err := json.Marshal(normalized(snap))
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create task directory: %w", err)
	}

	if err := f.flk.Lock(); err != nil {
		return fmt.Errorf("lock task file: %w", err)
	}
	defer f.flk.Unlock()

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if err := f.writeTemp(tmp, data); err != nil {
		tmp.Close()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp task file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}

func (f *JSONFile) Close() error { return f.flk.Close() }

func writeAndSync(tmp *os.File, data []byte) error {
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	return tmp.Sync()
}

// normalized replaces nil lists so they encode as [] rather than null.
func normalized(snap Snapshot) Snapshot {
	if snap.Active == nil {
		snap.Active = []Task{}
	}
	if snap.Completed == nil {
		snap.Completed = []Task{}
	}
	return snap
}
