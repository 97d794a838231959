package export

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/tasklog/internal/store"
)

func ToYAML(snap store.Snapshot, now time.Time, path string) error {
	data, err := yaml.Marshal(newDocument(snap, now))
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write yaml file: %w", err)
	}
	return nil
}
