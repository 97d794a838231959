package store

import (
	"slices"
	"sort"
	"time"

	"github.com/sadopc/tasklog/internal/due"
)

// Sorted returns the active tasks ordered by due instant and classified
// against now. The stored order is left untouched.
func (s *Store) Sorted(now time.Time) []View {
	s.mu.Lock()
	tasks := slices.Clone(s.active)
	s.mu.Unlock()
	return BuildViews(now, tasks)
}

// BuildViews sorts tasks ascending by due instant. Tasks whose date or time
// does not parse go last in their original order instead of failing the
// whole list.
func BuildViews(now time.Time, tasks []Task) []View {
	views := make([]View, len(tasks))
	for i, t := range tasks {
		v := View{Task: t}
		instant, err := t.Instant(now.Location())
		if err != nil {
			v.Bucket = due.Invalid
			v.Err = err
			v.Remaining = "Invalid due date"
		} else {
			v.Due = instant
			v.Bucket = due.Classify(now, instant)
			v.Remaining = due.Remaining(now, instant)
		}
		views[i] = v
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if a.Err != nil {
			return false
		}
		return a.Due.Before(b.Due)
	})
	return views
}

// BucketCounts tallies the buckets of views.
func BucketCounts(views []View) map[due.Bucket]int {
	buckets := make([]due.Bucket, len(views))
	for i, v := range views {
		buckets[i] = v.Bucket
	}
	return due.Counts(buckets)
}
