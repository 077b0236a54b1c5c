package storage

import (
	"fmt"
	"time"

	"github.com/nibzard/tasks-go/internal/task"
)

// SchemaVersion is the current on-disk format version.
const SchemaVersion = 1

// document is the on-disk representation of a task store.
type document struct {
	SchemaVersion int      `json:"schema_version"`
	NextID        int      `json:"next_id,omitempty"`
	Tasks         []record `json:"tasks"`
}

// record is one task as stored. Priority is kept as a plain string so an
// unknown value can be reported and defaulted instead of failing the decode.
type record struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Priority    string     `json:"priority,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func newDocument(s *task.Store) document {
	doc := document{
		SchemaVersion: SchemaVersion,
		NextID:        s.NextID(),
		Tasks:         make([]record, 0, s.Len()),
	}
	for t := range s.List(task.FilterAll) {
		doc.Tasks = append(doc.Tasks, record{
			ID:          t.ID,
			Title:       t.Title,
			Priority:    string(t.Priority),
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
			CompletedAt: t.CompletedAt,
		})
	}
	return doc
}

// toTask converts a record and reports tolerated integrity problems as warnings.
func (r record) toTask(path string, result *ValidationResult) task.Task {
	t := task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt.UTC(),
		CompletedAt: r.CompletedAt,
	}

	t.Priority = resolvePriority(r.Priority, path, result)

	if t.CompletedAt != nil {
		at := t.CompletedAt.UTC()
		t.CompletedAt = &at
	}
	switch {
	case t.Completed && t.CompletedAt == nil:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: task %d is completed but has no completed_at", path, t.ID))
	case !t.Completed && t.CompletedAt != nil:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: task %d is pending but has completed_at, dropping it", path, t.ID))
		t.CompletedAt = nil
	}
	return t
}

func resolvePriority(raw, path string, result *ValidationResult) task.Priority {
	if raw == "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s.priority: missing, using %s", path, task.DefaultPriority))
		return task.DefaultPriority
	}
	p, err := task.ParsePriority(raw)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s.priority: %v, using %s", path, err, task.DefaultPriority))
		return task.DefaultPriority
	}
	return p
}
