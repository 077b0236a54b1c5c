package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/tasks-go/internal/storage"
	"github.com/nibzard/tasks-go/internal/task"
)

// fileStore binds the gateway to the configured task file.
type fileStore struct {
	gateway *storage.Gateway
	path    string
}

func (f *fileStore) Load() (*task.Store, error) {
	s, err := f.gateway.Load(f.path)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return s, nil
}

func (f *fileStore) Save(s *task.Store) error {
	if err := f.gateway.Save(s, f.path); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// parseID parses a task id argument.
func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, &task.ValidationError{Field: "id", Err: fmt.Errorf("missing task id")}
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	id, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || id < 1 {
		return 0, &task.ValidationError{Field: "id", Err: fmt.Errorf("%q is not a task id", args[0])}
	}
	return id, nil
}
