package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/tasklog/internal/store"
)

func ToCSV(snap store.Snapshot, now time.Time, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Status", "Name", "Due Date", "Due Time", "Bucket", "Remaining"}); err != nil {
		return err
	}

	for _, r := range rows(snap, now) {
		if err := w.Write([]string{r.Status, r.Name, r.DueDate, r.DueTime, r.Bucket, r.Remaining}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
