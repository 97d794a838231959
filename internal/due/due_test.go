package due

import (
	"errors"
	"testing"
	"time"
)

var base = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestInstant(t *testing.T) {
	got, err := Instant("2025-02-01", "08:00", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Instant = %v, want %v", got, want)
	}

	if _, err := Instant("2025-13-01", "08:00", time.UTC); err == nil {
		t.Fatal("expected error for month 13")
	}
	if _, err := Instant("2025-02-01", "", time.UTC); err == nil {
		t.Fatal("expected error for empty time")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		want    Bucket
	}{
		{"past", base.Add(-time.Hour), Overdue},
		{"exactly now", base, Overdue},
		{"one minute", base.Add(time.Minute), DueSoon},
		{"just under a week", base.Add(SoonWindow - time.Second), DueSoon},
		{"exactly a week", base.Add(SoonWindow), DueLater},
		{"a month", base.AddDate(0, 1, 0), DueLater},
	}
	for _, tt := range tests {
		if got := Classify(base, tt.instant); got != tt.want {
			t.Errorf("%s: Classify = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassifyIsPure(t *testing.T) {
	instant := base.Add(48 * time.Hour)
	if Classify(base, instant) != Classify(base, instant) {
		t.Fatal("same inputs gave different buckets")
	}
}

func TestClassifyFlipsToOverdueAndStays(t *testing.T) {
	instant := base.Add(10 * 24 * time.Hour)
	seenOverdue := false
	for now := base; now.Before(base.Add(20 * 24 * time.Hour)); now = now.Add(6 * time.Hour) {
		b := Classify(now, instant)
		if seenOverdue && b != Overdue {
			t.Fatalf("bucket went back to %v at %v", b, now)
		}
		if b == Overdue {
			seenOverdue = true
			if now.Before(instant) {
				t.Fatalf("overdue before due instant at %v", now)
			}
		}
	}
	if !seenOverdue {
		t.Fatal("never became overdue")
	}
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Minute, "Overdue!"},
		{0, "Overdue!"},
		{30 * time.Minute, "Remaining: 0d 0h"},
		{3*24*time.Hour + 4*time.Hour + 59*time.Minute, "Remaining: 3d 4h"},
		{10 * 24 * time.Hour, "Remaining: 10d 0h"},
	}
	for _, tt := range tests {
		if got := Remaining(base, base.Add(tt.d)); got != tt.want {
			t.Errorf("Remaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCounts(t *testing.T) {
	counts := Counts([]Bucket{Overdue, Overdue, DueLater})
	if counts[Overdue] != 2 || counts[DueLater] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if n, ok := counts[DueSoon]; !ok || n != 0 {
		t.Fatal("every bucket should be present")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-01-01", "2025-01-01", false},
		{"2025-1-5", "2025-01-05", false},
		{" 2025-12-31 ", "2025-12-31", false},
		{"2025-02-30", "", true},
		{"01/02/2025", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("NormalizeDate(%q) err = %v, want ErrInvalidDate", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"9:5", "09:05", false},
		{"23:59:59", "23:59", false},
		{"24:00", "", true},
		{"noon", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeTime(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTime) {
				t.Errorf("NormalizeTime(%q) err = %v, want ErrInvalidTime", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeTime(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestBucketString(t *testing.T) {
	for _, b := range Buckets {
		if b.String() == "" {
			t.Fatalf("empty name for bucket %d", b)
		}
	}
	if Bucket(42).String() != "Bucket(42)" {
		t.Fatal("unknown bucket should render its number")
	}
}
