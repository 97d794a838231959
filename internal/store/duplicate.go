package store

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const DefaultDuplicateThreshold = 0.8

// DuplicateCheck returns the active tasks that look like the task about to be
// added: same due date and a name similarity of at least the store threshold.
// It is a heuristic for the caller to confirm, not an exact-match guard; Add
// never calls it.
func (s *Store) DuplicateCheck(name, dueDate string) []Task {
	date, err := s.dateOrToday(dueDate)
	if err != nil {
		date = strings.TrimSpace(dueDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []Task
	for _, t := range s.active {
		if t.DueDate != date {
			continue
		}
		if Similarity(t.Name, name) >= s.threshold {
			matches = append(matches, t)
		}
	}
	return matches
}

// Similarity is the case-insensitive SequenceMatcher ratio of a and b,
// compared rune by rune.
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(
		strings.Split(strings.ToLower(a), ""),
		strings.Split(strings.ToLower(b), ""),
	)
	return m.Ratio()
}
