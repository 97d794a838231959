package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sadopc/tasklog/internal/due"
)

const DefaultFilename = "tasks.json"

// Store owns the active and completed task lists. Every mutation is written
// through to the backend before it returns; a failed write leaves memory as it
// was before the call.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	log       zerolog.Logger
	now       func() time.Time
	threshold float64

	active    []Task
	completed []Task
}

type Option func(*Store)

// WithClock replaces time.Now, used for default due dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l.With().Str("component", "store").Logger() }
}

// WithDuplicateThreshold sets the similarity ratio at which DuplicateCheck
// reports a match.
func WithDuplicateThreshold(ratio float64) Option {
	return func(s *Store) { s.threshold = ratio }
}

// New loads the store from b. When nothing has been stored yet an empty store
// is written back immediately.
func New(b Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend:   b,
		log:       zerolog.Nop(),
		now:       time.Now,
		threshold: DefaultDuplicateThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	missing, err := s.load()
	if err != nil {
		return nil, err
	}
	if missing {
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("create task store: %w", err)
		}
		s.log.Info().Msg("created empty task store")
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load re-reads the backend. Missing or undecodable data yields an empty
// store; other read failures are returned.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.load()
	return err
}

// Save writes both lists to the backend.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) load() (missing bool, err error) {
	snap, err := s.backend.Read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.log.Debug().Msg("no stored tasks, starting empty")
		snap, missing = Snapshot{}, true
	case errors.Is(err, ErrCorrupt):
		s.log.Warn().Err(err).Msg("stored tasks unreadable, starting empty")
		snap = Snapshot{}
	case err != nil:
		return false, fmt.Errorf("load tasks: %w", err)
	}

	s.active = s.upgrade(snap.Active, "active")
	s.completed = s.upgrade(snap.Completed, "completed")
	s.log.Debug().
		Int("active", len(s.active)).
		Int("completed", len(s.completed)).
		Msg("loaded tasks")
	return missing, nil
}

// upgrade gives every entry an ID and a canonical HH:MM due time. Entries
// stored without a time get the end-of-day default.
func (s *Store) upgrade(tasks []Task, list string) []Task {
	out := make([]Task, 0, len(tasks))
	upgraded := 0
	for _, t := range tasks {
		t.ID = newID()
		if t.DueTime == "" {
			t.DueTime = due.DefaultTime
			upgraded++
		} else if clock, err := due.NormalizeTime(t.DueTime); err == nil && clock != t.DueTime {
			t.DueTime = clock
			upgraded++
		}
		if date, err := due.NormalizeDate(t.DueDate); err == nil {
			t.DueDate = date
		}
		out = append(out, t)
	}
	if upgraded > 0 {
		s.log.Info().
			Str("list", list).
			Int("count", upgraded).
			Msg("normalized due times on load")
	}
	return out
}

func (s *Store) save() error {
	err := s.backend.Write(Snapshot{Active: s.active, Completed: s.completed})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to save tasks")
		return fmt.Errorf("save tasks: %w", err)
	}
	s.log.Debug().
		Int("active", len(s.active)).
		Int("completed", len(s.completed)).
		Msg("saved tasks")
	return nil
}

// commit applies mutate and saves, restoring the previous lists if the save fails.
func (s *Store) commit(mutate func()) error {
	prevActive, prevCompleted := slices.Clone(s.active), slices.Clone(s.completed)
	mutate()
	if err := s.save(); err != nil {
		s.active, s.completed = prevActive, prevCompleted
		return err
	}
	return nil
}

// Active returns a copy of the active list in stored order.
func (s *Store) Active() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.active)
}

// Completed returns a copy of the completed list in stored order.
func (s *Store) Completed() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.completed)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Active: slices.Clone(s.active), Completed: slices.Clone(s.completed)}
}

func (s *Store) Now() time.Time { return s.now() }

func newID() string {
	return "T-" + uuid.New().String()[:8]
}

// DefaultPath returns ~/tasks.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultFilename), nil
}
