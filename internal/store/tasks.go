package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/tasklog/internal/due"
)

var (
	ErrEmptyName       = errors.New("task name is empty")
	ErrIndexOutOfRange = errors.New("task index out of range")
	ErrNotFound        = errors.New("task not found")
	ErrInvalidDate     = due.ErrInvalidDate
	ErrInvalidTime     = due.ErrInvalidTime
)

// Add appends a task to the active list. An empty date means today and an
// empty time means end of day.
func (s *Store) Add(name, dueDate, dueTime string) (Task, error) {
	t, err := s.build(name, dueDate, dueTime)
	if err != nil {
		return Task{}, err
	}
	t.ID = newID()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(func() { s.active = append(s.active, t) }); err != nil {
		return Task{}, err
	}
	s.log.Info().Str("id", t.ID).Str("name", t.Name).Msg("added task")
	return t, nil
}

// Edit replaces the active task at index, keeping its ID.
func (s *Store) Edit(index int, name, dueDate, dueTime string) error {
	t, err := s.build(name, dueDate, dueTime)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edit(index, t)
}

func (s *Store) EditByID(id, name, dueDate, dueTime string) error {
	t, err := s.build(name, dueDate, dueTime)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := indexOf(s.active, id)
	if err != nil {
		return err
	}
	return s.edit(i, t)
}

func (s *Store) edit(index int, t Task) error {
	if err := checkIndex(index, len(s.active)); err != nil {
		return err
	}
	t.ID = s.active[index].ID
	if err := s.commit(func() { s.active[index] = t }); err != nil {
		return err
	}
	s.log.Info().Str("id", t.ID).Msg("edited task")
	return nil
}

// Delete removes the active task at index.
func (s *Store) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delete(index)
}

func (s *Store) DeleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := indexOf(s.active, id)
	if err != nil {
		return err
	}
	return s.delete(i)
}

func (s *Store) delete(index int) error {
	if err := checkIndex(index, len(s.active)); err != nil {
		return err
	}
	id := s.active[index].ID
	if err := s.commit(func() { s.active = remove(s.active, index) }); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("deleted task")
	return nil
}

// Complete moves the active task at index to the end of the completed list.
func (s *Store) Complete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete(index)
}

func (s *Store) CompleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := indexOf(s.active, id)
	if err != nil {
		return err
	}
	return s.complete(i)
}

func (s *Store) complete(index int) error {
	if err := checkIndex(index, len(s.active)); err != nil {
		return err
	}
	t := s.active[index]
	err := s.commit(func() {
		s.active = remove(s.active, index)
		s.completed = append(s.completed, t)
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("id", t.ID).Msg("completed task")
	return nil
}

// Uncomplete moves the completed task at index back to the end of the active list.
func (s *Store) Uncomplete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uncomplete(index)
}

func (s *Store) UncompleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := indexOf(s.completed, id)
	if err != nil {
		return err
	}
	return s.uncomplete(i)
}

func (s *Store) uncomplete(index int) error {
	if err := checkIndex(index, len(s.completed)); err != nil {
		return err
	}
	t := s.completed[index]
	err := s.commit(func() {
		s.completed = remove(s.completed, index)
		s.active = append(s.active, t)
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("id", t.ID).Msg("restored task")
	return nil
}

// Get looks a task up by ID in either list.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range [][]Task{s.active, s.completed} {
		if i, err := indexOf(list, id); err == nil {
			return list[i], true
		}
	}
	return Task{}, false
}

// Search returns active tasks whose name contains term, ignoring case.
func (s *Store) Search(term string) []Task {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var found []Task
	for _, t := range s.active {
		if strings.Contains(strings.ToLower(t.Name), term) {
			found = append(found, t)
		}
	}
	return found
}

// build validates and canonicalizes user input into a Task without an ID.
func (s *Store) build(name, dueDate, dueTime string) (Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Task{}, ErrEmptyName
	}

	date, err := s.dateOrToday(dueDate)
	if err != nil {
		return Task{}, err
	}

	clock := due.DefaultTime
	if strings.TrimSpace(dueTime) != "" {
		if clock, err = due.NormalizeTime(dueTime); err != nil {
			return Task{}, err
		}
	}

	return Task{Name: name, DueDate: date, DueTime: clock}, nil
}

func (s *Store) dateOrToday(dueDate string) (string, error) {
	if strings.TrimSpace(dueDate) == "" {
		return s.now().Format(due.DateLayout), nil
	}
	return due.NormalizeDate(dueDate)
}

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, n)
	}
	return nil
}

func indexOf(tasks []Task, id string) (int, error) {
	for i := range tasks {
		if tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// remove returns tasks without the element at i, never sharing the backing
// array so a rollback snapshot stays intact.
func remove(tasks []Task, i int) []Task {
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}
