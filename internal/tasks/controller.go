// Package tasks owns the Work/Travel task lists: in-memory state, the
// edit and delete-confirmation flows, and write-through persistence.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/worktravel/internal/model"
	"github.com/Makepad-fr/worktravel/internal/store"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller and writer logs to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock replaces the clock used to derive task IDs.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.ids.clock = clock
		}
	}
}

// Controller holds all task-list state. Every method must be called from
// the same goroutine; persistence happens in the background.
type Controller struct {
	st  store.Store
	log *log.Logger
	ids idGen
	w   *writer

	mode  model.Mode
	tasks map[model.ID]model.Task
	order []model.ID

	editing model.ID
	draft   string
	input   string

	deleting model.ID
}

// New returns an empty controller in Work mode writing to st.
// Call Load to pick up persisted state, and Close when done.
func New(ctx context.Context, st store.Store, opts ...Option) *Controller {
	c := &Controller{
		log:   log.New(io.Discard),
		ids:   idGen{clock: RealClock{}},
		mode:  model.Work,
		tasks: map[model.ID]model.Task{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.st = st
	// writes already accepted must still land after ctx is canceled
	c.w = newWriter(context.WithoutCancel(ctx), st, c.log)
	return c
}

// Load replaces in-memory state with the persisted collection and mode.
// Missing keys leave the defaults in place. Errors are returned for
// reporting only: whatever could not be read falls back to defaults and
// the controller stays usable.
func (c *Controller) Load(ctx context.Context) error {
	var errs []error

	c.mode = model.Work
	if blob, ok, err := c.st.Get(ctx, store.ModeKey); err != nil {
		errs = append(errs, fmt.Errorf("read mode: %w", err))
	} else if ok {
		m, err := decodeMode(blob)
		if err != nil {
			errs = append(errs, fmt.Errorf("decode mode: %w", err))
		} else {
			c.mode = m
		}
	}

	c.tasks = map[model.ID]model.Task{}
	c.order = nil
	if blob, ok, err := c.st.Get(ctx, store.TasksKey); err != nil {
		errs = append(errs, fmt.Errorf("read tasks: %w", err))
	} else if ok {
		tasks, err := decodeTasks(blob)
		if err != nil {
			errs = append(errs, fmt.Errorf("decode tasks: %w", err))
		}
		if tasks != nil {
			c.tasks = tasks
		}
	}
	if blob, ok, err := c.st.Get(ctx, store.LastIDKey); err != nil {
		errs = append(errs, fmt.Errorf("read last id: %w", err))
	} else if ok {
		if _, valid := numericID(model.ID(blob)); !valid {
			errs = append(errs, fmt.Errorf("decode last id: %q is not a number", blob))
		} else {
			c.ids.observe(model.ID(blob))
		}
	}
	for id := range c.tasks {
		c.order = append(c.order, id)
		c.ids.observe(id)
	}
	slices.SortFunc(c.order, compareIDs)

	c.editing, c.draft, c.deleting = "", "", ""
	c.log.Debug("loaded", "tasks", len(c.tasks), "mode", c.mode)
	return errors.Join(errs...)
}

// Mode is the list currently shown.
func (c *Controller) Mode() model.Mode { return c.mode }

// SetMode switches the visible list and persists the choice.
// Invalid modes are ignored.
func (c *Controller) SetMode(m model.Mode) bool {
	if !m.Valid() {
		return false
	}
	c.mode = m
	c.persistMode()
	return true
}

// Input is the add-field draft.
func (c *Controller) Input() string { return c.input }

func (c *Controller) SetInput(s string) { c.input = s }

// AddTask appends a new incomplete task to the current list. Only empty
// text is rejected; the text is stored as given.
func (c *Controller) AddTask(text string) (model.ID, bool) {
	if text == "" {
		return "", false
	}
	id := c.ids.next()
	c.w.enqueue(store.LastIDKey, string(id))
	c.tasks[id] = model.Task{Text: text, Mode: c.mode, Complete: false}
	c.order = append(c.order, id)
	c.persistTasks()
	c.input = ""
	return id, true
}

// Task looks up a single record.
func (c *Controller) Task(id model.ID) (model.Task, bool) {
	t, ok := c.tasks[id]
	return t, ok
}

// Len counts tasks across both lists.
func (c *Controller) Len() int { return len(c.tasks) }

// BeginEdit starts editing id with its current text as the draft.
func (c *Controller) BeginEdit(id model.ID) bool {
	t, ok := c.tasks[id]
	if !ok {
		return false
	}
	c.editing = id
	c.draft = t.Text
	return true
}

// Editing reports the edit target, if any.
func (c *Controller) Editing() (model.ID, bool) {
	return c.editing, c.editing != ""
}

func (c *Controller) Draft() string { return c.draft }

func (c *Controller) SetDraft(s string) { c.draft = s }

// CommitEdit replaces the task text and leaves edit mode.
// Empty text is ignored and edit mode stays active.
func (c *Controller) CommitEdit(id model.ID, text string) bool {
	if text == "" {
		return false
	}
	t, ok := c.tasks[id]
	if !ok {
		if c.editing == id {
			c.CancelEdit()
		}
		return false
	}
	t.Text = text
	c.tasks[id] = t
	c.persistTasks()
	c.CancelEdit()
	return true
}

// CancelEdit drops the edit target and draft.
func (c *Controller) CancelEdit() {
	c.editing = ""
	c.draft = ""
}

// ToggleComplete sets the complete flag of id.
func (c *Controller) ToggleComplete(id model.ID, complete bool) bool {
	t, ok := c.tasks[id]
	if !ok {
		return false
	}
	t.Complete = complete
	c.tasks[id] = t
	c.persistTasks()
	return true
}

// Prompt is the two-choice question asked before a delete.
type Prompt struct {
	Title        string
	Message      string
	CancelLabel  string
	ConfirmLabel string
	Entry        model.Entry
}

// Confirmer answers delete prompts; true means confirmed.
type Confirmer interface {
	Confirm(Prompt) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(Prompt) bool

func (f ConfirmFunc) Confirm(p Prompt) bool { return f(p) }

// DeletePrompt builds the confirmation prompt for id.
func (c *Controller) DeletePrompt(id model.ID) (Prompt, bool) {
	t, ok := c.tasks[id]
	if !ok {
		return Prompt{}, false
	}
	return Prompt{
		Title:        "Delete To Do",
		Message:      "Are you sure?",
		CancelLabel:  "Cancel",
		ConfirmLabel: "I'm Sure",
		Entry:        model.Entry{ID: id, Task: t},
	}, true
}

// DeleteTask removes id once confirm agrees. A declined prompt changes nothing.
func (c *Controller) DeleteTask(id model.ID, confirm Confirmer) bool {
	p, ok := c.DeletePrompt(id)
	if !ok || !confirm.Confirm(p) {
		return false
	}
	c.remove(id)
	return true
}

// RequestDelete parks id until ConfirmDelete or CancelDelete.
func (c *Controller) RequestDelete(id model.ID) bool {
	if _, ok := c.tasks[id]; !ok {
		return false
	}
	c.deleting = id
	return true
}

// PendingDelete reports the task awaiting confirmation, if any.
func (c *Controller) PendingDelete() (model.ID, bool) {
	return c.deleting, c.deleting != ""
}

// ConfirmDelete removes the pending task.
func (c *Controller) ConfirmDelete() bool {
	id := c.deleting
	c.deleting = ""
	if _, ok := c.tasks[id]; !ok {
		return false
	}
	c.remove(id)
	return true
}

// CancelDelete keeps the pending task.
func (c *Controller) CancelDelete() { c.deleting = "" }

func (c *Controller) remove(id model.ID) {
	delete(c.tasks, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	if c.editing == id {
		c.CancelEdit()
	}
	c.persistTasks()
}

// VisibleTasks lists tasks of the current mode in insertion order.
func (c *Controller) VisibleTasks() []model.Entry {
	return c.tasksFor(c.mode)
}

func (c *Controller) tasksFor(m model.Mode) []model.Entry {
	out := make([]model.Entry, 0, len(c.order))
	for _, id := range c.order {
		if t := c.tasks[id]; t.Mode == m {
			out = append(out, model.Entry{ID: id, Task: t})
		}
	}
	return out
}

// AllTasks lists both lists, Work first, each in insertion order.
func (c *Controller) AllTasks() []model.Entry {
	return append(c.tasksFor(model.Work), c.tasksFor(model.Travel)...)
}

// Snapshot is read-only state for renderers.
type Snapshot struct {
	Mode          model.Mode
	Visible       []model.Entry
	Editing       model.ID
	Draft         string
	PendingDelete model.ID
	Input         string
	Done          int
	Pending       int
}

func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Mode:          c.mode,
		Visible:       c.VisibleTasks(),
		Editing:       c.editing,
		Draft:         c.draft,
		PendingDelete: c.deleting,
		Input:         c.input,
	}
	for _, e := range s.Visible {
		if e.Task.Complete {
			s.Done++
		} else {
			s.Pending++
		}
	}
	return s
}

// Flush waits for queued writes to reach the store.
func (c *Controller) Flush() { c.w.flush() }

// Close flushes and stops the background writer.
func (c *Controller) Close() {
	c.w.flush()
	c.w.close()
}

func (c *Controller) persistTasks() {
	blob, err := encodeTasks(c.tasks)
	if err != nil {
		c.log.Error("encode tasks", "err", err)
		return
	}
	c.w.enqueue(store.TasksKey, blob)
}

func (c *Controller) persistMode() {
	blob, err := encodeMode(c.mode)
	if err != nil {
		c.log.Error("encode mode", "err", err)
		return
	}
	c.w.enqueue(store.ModeKey, blob)
}
