// Package due turns a task's textual due date and time into an orderable instant
// and classifies it relative to the current time.
package due

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04"
	DefaultTime = "23:59"

	// SoonWindow separates "due soon" from "due later".
	SoonWindow = 7 * 24 * time.Hour
)

var (
	ErrInvalidDate = errors.New("invalid due date")
	ErrInvalidTime = errors.New("invalid due time")
)

// Bucket is a derived, never persisted display classification.
type Bucket int

const (
	Overdue Bucket = iota
	DueSoon
	DueLater
	Invalid // due date or time could not be parsed
)

var bucketNames = map[Bucket]string{
	Overdue:  "Overdue",
	DueSoon:  "Due soon",
	DueLater: "Due later",
	Invalid:  "Invalid",
}

func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// Buckets lists the buckets in display order.
var Buckets = []Bucket{Overdue, DueSoon, DueLater, Invalid}

// Instant combines a canonical date and time in loc.
func Instant(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due instant %q %q: %w", date, clock, err)
	}
	return t, nil
}

// Classify is a pure function of now and the due instant.
func Classify(now, instant time.Time) Bucket {
	if !instant.After(now) {
		return Overdue
	}
	if instant.Sub(now) < SoonWindow {
		return DueSoon
	}
	return DueLater
}

// Remaining renders the time left until instant, e.g. "Remaining: 3d 4h".
func Remaining(now, instant time.Time) string {
	d := instant.Sub(now)
	if d <= 0 {
		return "Overdue!"
	}
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	return fmt.Sprintf("Remaining: %dd %dh", days, hours)
}

// Counts tallies buckets.
func Counts(buckets []Bucket) map[Bucket]int {
	counts := make(map[Bucket]int, len(Buckets))
	for _, b := range Buckets {
		counts[b] = 0
	}
	for _, b := range buckets {
		counts[b]++
	}
	return counts
}

// NormalizeDate accepts YYYY-M-D with or without zero padding and returns YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-1-2", s)
	if err != nil {
		return "", fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return t.Format(DateLayout), nil
}

// NormalizeTime accepts H:M or H:M:S and returns HH:MM. Seconds are dropped.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:4", "15:4:5"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, s)
}
