package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nibzard/tasks-go/internal/task"
	"github.com/nibzard/tasks-go/internal/ui"
)

// addCommand adds a task. The remaining arguments form the title.
func (a *app) addCommand(args []string) error {
	fs := a.newFlagSet("add")
	priority := fs.String("p", a.cfg.DefaultPriority, "Priority (low, medium, high)")
	fs.StringVar(priority, "priority", a.cfg.DefaultPriority, "Priority (low, medium, high)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := task.ParsePriority(*priority)
	if err != nil {
		return &task.ValidationError{Field: "priority", Err: err}
	}

	s, err := a.files.Load()
	if err != nil {
		return err
	}
	added, err := s.Add(strings.Join(fs.Args(), " "), p)
	if err != nil {
		return err
	}
	if err := a.files.Save(s); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added task %d: %s [%s]\n", added.ID, added.Title, ui.PriorityLabel(added.Priority))
	return nil
}

// lsCommand lists tasks in insertion order.
func (a *app) lsCommand(args []string) error {
	fs := a.newFlagSet("ls")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	filter := task.FilterAll
	if len(remaining) == 1 {
		f, err := task.ParseFilter(remaining[0])
		if err != nil {
			return err
		}
		filter = f
	}

	s, err := a.files.Load()
	if err != nil {
		return err
	}
	return ui.NewPrinter(a.out, nil).Tasks(s.List(filter), filter)
}

// doneCommand marks a task completed.
func (a *app) doneCommand(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	s, err := a.files.Load()
	if err != nil {
		return err
	}
	completed, err := s.Complete(id)
	if err != nil {
		return err
	}
	if err := a.files.Save(s); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Completed task %d: %s\n", completed.ID, completed.Title)
	return nil
}

// rmCommand removes a task after confirmation.
func (a *app) rmCommand(args []string) error {
	fs := a.newFlagSet("rm")
	yes := fs.Bool("y", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs.Args())
	if err != nil {
		return err
	}

	s, err := a.files.Load()
	if err != nil {
		return err
	}
	t, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}

	if a.cfg.Confirm && !*yes {
		if !a.confirm(fmt.Sprintf("Delete task %d: %s?", t.ID, t.Title)) {
			fmt.Fprintln(a.out, "Deletion cancelled.")
			return nil
		}
	}

	if err := s.Remove(id); err != nil {
		return err
	}
	if err := a.files.Save(s); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted task %d: %s\n", t.ID, t.Title)
	return nil
}

// clearCommand removes every completed task after confirmation.
func (a *app) clearCommand(args []string) error {
	fs := a.newFlagSet("clear")
	yes := fs.Bool("y", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := a.files.Load()
	if err != nil {
		return err
	}
	completed := s.Statistics().Completed
	if completed == 0 {
		fmt.Fprintln(a.out, "No completed tasks to clear.")
		return nil
	}

	if a.cfg.Confirm && !*yes {
		if !a.confirm(fmt.Sprintf("This will remove %d completed task(s).", completed)) {
			fmt.Fprintln(a.out, "Operation cancelled.")
			return nil
		}
	}

	removed := s.ClearCompleted()
	if err := a.files.Save(s); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Cleared %d completed task(s).\n", removed)
	return nil
}

// statsCommand prints task statistics.
func (a *app) statsCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	s, err := a.files.Load()
	if err != nil {
		return err
	}
	return ui.NewPrinter(a.out, nil).Statistics(s.Statistics())
}

// tuiCommand launches the interactive screen.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	s, err := a.files.Load()
	if err != nil {
		return err
	}
	model := ui.NewModel(s, a.files,
		ui.WithDefaultPriority(a.cfg.Priority()),
		ui.WithTaskPath(a.cfg.TaskFile),
	)
	return ui.RunTUI(ctx, model)
}
