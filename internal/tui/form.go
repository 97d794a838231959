package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sadopc/tasklog/internal/due"
	"github.com/sadopc/tasklog/internal/store"
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
)

// taskForm collects a task's fields. Adding runs the duplicate guard after
// the fields are filled in and asks for confirmation when it finds a match.
type taskForm struct {
	store *store.Store
	mode  formMode
	id    string // task being edited

	// Form field pointers (survive value copies)
	name  *string
	date  *string
	clock *string
	force *bool

	form       *huh.Form
	confirming bool
	dupes      []store.Task
}

func newAddForm(s *store.Store) taskForm {
	f := taskForm{store: s, mode: formAdd}
	f.reset("", "", "")
	f.form = f.fieldsForm()
	return f
}

func newEditForm(s *store.Store, t store.Task) taskForm {
	f := taskForm{store: s, mode: formEdit, id: t.ID}
	f.reset(t.Name, t.DueDate, t.DueTime)
	f.form = f.fieldsForm()
	return f
}

func (f *taskForm) reset(name, date, clock string) {
	force := false
	f.name, f.date, f.clock, f.force = &name, &date, &clock, &force
}

func (f taskForm) title() string {
	switch {
	case f.confirming:
		return "Possible Duplicate"
	case f.mode == formEdit:
		return "Edit Task"
	default:
		return "New Task"
	}
}

func (f taskForm) fieldsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Value(f.name).
				Validate(validateName),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, empty for today").
				Value(f.date).
				Validate(optional(due.NormalizeDate)),
			huh.NewInput().
				Title("Due time").
				Description("HH:MM, empty for " + due.DefaultTime).
				Value(f.clock).
				Validate(optional(due.NormalizeTime)),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (f taskForm) confirmForm() *huh.Form {
	lines := make([]string, len(f.dupes))
	for i, d := range f.dupes {
		lines[i] = "• " + taskLine(d)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("A similar task is already due that day").
				Description(strings.Join(lines, "\n")).
				Affirmative("Add anyway").
				Negative("Cancel").
				Value(f.force),
		),
	)
}

func (f taskForm) Init() tea.Cmd {
	return f.form.Init()
}

// update feeds msg to the huh form. done reports that the form is finished,
// either saved or cancelled, and cmd carries the outcome.
func (f taskForm) update(msg tea.Msg) (taskForm, tea.Cmd, bool) {
	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateAborted:
		return f, nil, true
	case huh.StateCompleted:
		return f.submit()
	}
	return f, cmd, false
}

// submit saves the collected fields, or switches to the confirmation step
// when a new task looks like a duplicate.
func (f taskForm) submit() (taskForm, tea.Cmd, bool) {
	if f.mode == formEdit {
		err := f.store.EditByID(f.id, *f.name, *f.date, *f.clock)
		return f, mutationCmd(err, "Task updated"), true
	}

	if !f.confirming {
		if dupes := f.store.DuplicateCheck(*f.name, *f.date); len(dupes) > 0 {
			f.confirming = true
			f.dupes = dupes
			f.form = f.confirmForm()
			return f, f.form.Init(), false
		}
	} else if !*f.force {
		return f, func() tea.Msg { return statusMsg{text: "Task not added"} }, true
	}

	t, err := f.store.Add(*f.name, *f.date, *f.clock)
	return f, mutationCmd(err, fmt.Sprintf("Added %q", t.Name)), true
}

func (f taskForm) view() string {
	return f.form.View()
}

var errNameRequired = errors.New("task name is required")

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errNameRequired
	}
	return nil
}

// optional wraps a normalizer so that empty input passes validation.
func optional(normalize func(string) (string, error)) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := normalize(s)
		return err
	}
}
