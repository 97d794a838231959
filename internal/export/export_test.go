package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/tasklog/internal/store"
)

var exportNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func sampleData() store.Snapshot {
	return store.Snapshot{
		Active: []store.Task{
			{Name: "Renew passport", DueDate: "2025-03-01", DueTime: "09:00"},
			{Name: "Pay rent", DueDate: "2024-12-31", DueTime: "23:59"},
			{Name: "Broken", DueDate: "someday", DueTime: "23:59"},
		},
		Completed: []store.Task{
			{Name: "File taxes", DueDate: "2024-11-30", DueTime: "17:00"},
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), exportNow, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 active + 1 completed
	if len(records) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(records))
	}

	expectedHeader := []string{"Status", "Name", "Due Date", "Due Time", "Bucket", "Remaining"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	// Active rows are in due order, unparseable last.
	if records[1][1] != "Pay rent" || records[1][4] != "Overdue" || records[1][5] != "Overdue!" {
		t.Fatalf("unexpected first row %v", records[1])
	}
	if records[2][1] != "Renew passport" || records[2][4] != "Due later" {
		t.Fatalf("unexpected second row %v", records[2])
	}
	if records[3][1] != "Broken" || records[3][4] != "Invalid" {
		t.Fatalf("unexpected third row %v", records[3])
	}

	done := records[4]
	if done[0] != "completed" || done[1] != "File taxes" || done[4] != "" {
		t.Fatalf("unexpected completed row %v", done)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(store.Snapshot{}, exportNow, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(store.Snapshot{}, exportNow, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	snap := store.Snapshot{Active: []store.Task{
		{Name: `Call "Bob", then Alice`, DueDate: "2025-01-02", DueTime: "10:00"},
	}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(snap, exportNow, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][1] != `Call "Bob", then Alice` {
		t.Fatalf("name mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), exportNow, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result document
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Active != 3 || result.Completed != 1 || len(result.Tasks) != 4 {
		t.Fatalf("unexpected counts %d/%d/%d", result.Active, result.Completed, len(result.Tasks))
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	first := result.Tasks[0]
	if first.Name != "Pay rent" || first.Status != statusActive {
		t.Fatalf("unexpected first task %+v", first)
	}
	if _, err := time.Parse(time.RFC3339, first.Due); err != nil {
		t.Fatalf("due is not valid RFC3339: %q", first.Due)
	}
	if result.Tasks[2].Due != "" {
		t.Fatal("unparseable task should have no due instant")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(store.Snapshot{}, exportNow, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(store.Snapshot{}, exportNow, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// YAML
// ============================================================

func TestToYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")

	if err := ToYAML(sampleData(), exportNow, path); err != nil {
		t.Fatalf("ToYAML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result document
	if err := yaml.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(result.Tasks) != 4 {
		t.Fatalf("tasks = %d, want 4", len(result.Tasks))
	}
	if result.Tasks[3].Status != statusCompleted {
		t.Fatalf("last task should be completed, got %+v", result.Tasks[3])
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	for _, format := range Formats {
		path := filepath.Join(dir, "out."+format)
		if err := ToFile(format, sampleData(), exportNow, path); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("%s: no output written", format)
		}
	}
	if err := ToFile("xml", sampleData(), exportNow, filepath.Join(dir, "out.xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
