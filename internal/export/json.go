package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/tasklog/internal/store"
)

func ToJSON(snap store.Snapshot, now time.Time, path string) error {
	data, err := json.MarshalIndent(newDocument(snap, now), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
