package task

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"
	"time"
)

// Store is the ordered, in-memory task list.
// It is not safe for concurrent use.
type Store struct {
	tasks  []Task
	nextID int
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at and completed_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore builds a store from previously persisted tasks.
// nextID is the persisted high-water mark; it is raised to max(id)+1 when it
// lags behind, so a stale or missing value never causes id reuse.
// Ids must lie in [1, math.MaxInt) and titles must not be blank.
func Restore(tasks []Task, nextID int, opts ...Option) (*Store, error) {
	s := NewStore(opts...)
	seen := make(map[int]int, len(tasks))
	maxID := 0
	for i, t := range tasks {
		if t.ID < 1 || t.ID == math.MaxInt {
			return nil, &ValidationError{
				Field: fmt.Sprintf("tasks[%d].id", i),
				Err:   fmt.Errorf("must be between 1 and %d, got %d", math.MaxInt-1, t.ID),
			}
		}
		if strings.TrimSpace(t.Title) == "" {
			return nil, &ValidationError{
				Field: fmt.Sprintf("tasks[%d].title", i),
				Err:   errors.New("must not be empty"),
			}
		}
		if prev, ok := seen[t.ID]; ok {
			return nil, fmt.Errorf("tasks[%d] and tasks[%d]: %w %d", prev, i, ErrDuplicateID, t.ID)
		}
		seen[t.ID] = i
		if t.ID > maxID {
			maxID = t.ID
		}
		s.tasks = append(s.tasks, t.clone())
	}
	s.nextID = max(nextID, maxID+1, 1)
	return s, nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// NextID returns the id the next Add will assign.
func (s *Store) NextID() int {
	return s.nextID
}

// Add appends a new pending task and returns a copy of it.
// An empty priority means DefaultPriority.
func (s *Store) Add(title string, priority Priority) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, &ValidationError{
			Field: "title",
			Err:   errors.New("must not be empty"),
		}
	}
	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.Valid() {
		return Task{}, &ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("unknown priority %q", priority),
		}
	}

	if s.nextID == math.MaxInt {
		return Task{}, ErrIDExhausted
	}

	t := Task{
		ID:        s.nextID,
		Title:     title,
		Priority:  priority,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t.clone(), nil
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i].clone(), true
}

// Complete marks a pending task as completed and returns the updated copy.
// Completing an already completed task fails with ErrAlreadyCompleted and
// changes nothing.
func (s *Store) Complete(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	t := &s.tasks[i]
	if t.Completed {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrAlreadyCompleted)
	}
	now := s.now()
	t.Completed = true
	t.CompletedAt = &now
	return t.clone(), nil
}

// Remove deletes the task with the given id.
func (s *Store) Remove(id int) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// ClearCompleted removes every completed task and returns how many were removed.
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	// Zero the tail so dropped CompletedAt pointers can be collected.
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = Task{}
	}
	s.tasks = kept
	return removed
}

// List yields copies of the tasks that match f, in insertion order.
// The sequence can be ranged over any number of times.
func (s *Store) List(f Filter) iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range s.tasks {
			if !f.Match(t) {
				continue
			}
			if !yield(t.clone()) {
				return
			}
		}
	}
}

// Tasks returns a copy of every task in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, 0, len(s.tasks))
	for t := range s.List(FilterAll) {
		out = append(out, t)
	}
	return out
}

func (s *Store) index(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
