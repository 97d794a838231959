package export

import (
	"fmt"
	"time"

	"github.com/sadopc/tasklog/internal/store"
)

const (
	statusActive    = "active"
	statusCompleted = "completed"
)

// row is one exported task. Active tasks come first in due order, followed by
// completed tasks in the order they were completed.
type row struct {
	Status    string `json:"status" yaml:"status"`
	Name      string `json:"name" yaml:"name"`
	DueDate   string `json:"due_date" yaml:"due_date"`
	DueTime   string `json:"due_time" yaml:"due_time"`
	Due       string `json:"due,omitempty" yaml:"due,omitempty"`
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Remaining string `json:"remaining,omitempty" yaml:"remaining,omitempty"`
}

func rows(snap store.Snapshot, now time.Time) []row {
	var out []row
	for _, v := range store.BuildViews(now, snap.Active) {
		r := row{
			Status:    statusActive,
			Name:      v.Name,
			DueDate:   v.DueDate,
			DueTime:   v.DueTime,
			Bucket:    v.Bucket.String(),
			Remaining: v.Remaining,
		}
		if v.Err == nil {
			r.Due = v.Due.Format(time.RFC3339)
		}
		out = append(out, r)
	}
	for _, t := range snap.Completed {
		r := row{
			Status:  statusCompleted,
			Name:    t.Name,
			DueDate: t.DueDate,
			DueTime: t.DueTime,
		}
		if instant, err := t.Instant(now.Location()); err == nil {
			r.Due = instant.Format(time.RFC3339)
		}
		out = append(out, r)
	}
	return out
}

type document struct {
	ExportedAt string `json:"exported_at" yaml:"exported_at"`
	Active     int    `json:"active" yaml:"active"`
	Completed  int    `json:"completed" yaml:"completed"`
	Tasks      []row  `json:"tasks" yaml:"tasks"`
}

func newDocument(snap store.Snapshot, now time.Time) document {
	return document{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Active:     len(snap.Active),
		Completed:  len(snap.Completed),
		Tasks:      rows(snap, now),
	}
}

// Formats lists the supported export formats in picker order.
var Formats = []string{"csv", "json", "yaml"}

// ToFile writes snap in the named format.
func ToFile(format string, snap store.Snapshot, now time.Time, path string) error {
	switch format {
	case "csv":
		return ToCSV(snap, now, path)
	case "json":
		return ToJSON(snap, now, path)
	case "yaml", "yml":
		return ToYAML(snap, now, path)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
