package store

import (
	"math"
	"testing"
)

func TestDuplicateCheck(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("Pay rent", "2025-01-01", "")

	if got := s.DuplicateCheck("pay Rent", "2025-01-01"); len(got) != 1 {
		t.Fatalf("expected a likely duplicate, got %v", got)
	}
	if got := s.DuplicateCheck("Pay rent", "2025-01-02"); len(got) != 0 {
		t.Fatalf("different date should not be a duplicate, got %v", got)
	}
	if got := s.DuplicateCheck("Buy groceries", "2025-01-01"); len(got) != 0 {
		t.Fatalf("dissimilar name should not be a duplicate, got %v", got)
	}
}

func TestDuplicateCheckDefaultsToToday(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("Pay rent", "", "")

	if got := s.DuplicateCheck("Pay the rent", ""); len(got) != 1 {
		t.Fatalf("empty date should compare against today, got %v", got)
	}
}

func TestDuplicateCheckIgnoresCompleted(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("Pay rent", "2025-01-01", "")
	s.Complete(0)

	if got := s.DuplicateCheck("Pay rent", "2025-01-01"); len(got) != 0 {
		t.Fatal("completed tasks are not duplicates")
	}
}

func TestDuplicateThresholdOption(t *testing.T) {
	path := writeFile(t, `{"tasks": [["Pay rent", "2025-01-01", "23:59"]], "complete": []}`)
	s, err := New(NewJSONFile(path), WithDuplicateThreshold(1.0))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.DuplicateCheck("Pay rents", "2025-01-01"); len(got) != 0 {
		t.Fatal("threshold 1.0 should only match identical names")
	}
	if got := s.DuplicateCheck("PAY RENT", "2025-01-01"); len(got) != 1 {
		t.Fatal("identical names ignoring case should match")
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"Pay rent", "pay Rent", 1.0},
		{"abcd", "bcde", 0.75},
		{"abc", "xyz", 0.0},
		{"", "", 1.0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
