package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/tasklog/internal/due"
)

// Task is one to-do item. On disk it is the array [name, due_date, due_time];
// the ID only lives for the lifetime of the process.
type Task struct {
	ID      string
	Name    string
	DueDate string // YYYY-MM-DD
	DueTime string // HH:MM
}

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{t.Name, t.DueDate, t.DueTime})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("task entry: %w", err)
	}
	switch len(fields) {
	case 2:
		*t = Task{Name: fields[0], DueDate: fields[1]}
	case 3:
		*t = Task{Name: fields[0], DueDate: fields[1], DueTime: fields[2]}
	default:
		return fmt.Errorf("task entry: want 2 or 3 fields, got %d", len(fields))
	}
	return nil
}

// Instant is the due date and time combined in loc.
func (t Task) Instant(loc *time.Location) (time.Time, error) {
	return due.Instant(t.DueDate, t.DueTime, loc)
}

// Snapshot is the whole persisted state.
type Snapshot struct {
	Active    []Task `json:"tasks"`
	Completed []Task `json:"complete"`
}

// View is an active task decorated for display as of a given time.
type View struct {
	Task
	Due       time.Time
	Bucket    due.Bucket
	Remaining string
	Err       error // set when Bucket is due.Invalid
}
