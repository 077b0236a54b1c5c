package cmd

import (
	"fmt"
	"os"

	"github.com/nibzard/tasks-go/internal/config"
	"github.com/nibzard/tasks-go/internal/storage"
	"github.com/nibzard/tasks-go/internal/task"
	"github.com/nibzard/tasks-go/internal/ui"
)

// doctorCommand checks the configuration and the task file.
func (a *app) doctorCommand(args []string) error {
	fs := a.newFlagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := a.out
	fmt.Fprintln(w, "Tasks Doctor")
	fmt.Fprintln(w, "============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	for _, f := range []struct{ label, path string }{
		{"User file", a.cfg.UserFile},
		{"Project file", a.cfg.ProjectFile},
		{".env file", a.cfg.DotEnvFile},
	} {
		if f.path == "" {
			fmt.Fprintf(w, "  -  %s: none\n", f.label)
			continue
		}
		fmt.Fprintf(w, "  ✅ %s: %s\n", f.label, f.path)
	}
	fmt.Fprintf(w, "  ✅ Default priority: %s\n", a.cfg.Priority())
	fmt.Fprintln(w)

	if a.cfg.SchemaFile != "" {
		fmt.Fprintf(w, "Schema file: %s\n", a.cfg.SchemaFile)
		if info, err := os.Stat(a.cfg.SchemaFile); err != nil {
			fmt.Fprintf(w, "  ⚠️  %v (using built-in schema)\n", err)
		} else if info.IsDir() {
			fmt.Fprintln(w, "  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Task file: %s\n", a.cfg.TaskFile)
	result := a.files.gateway.Check(a.cfg.TaskFile)
	switch {
	case !result.Exists:
		fmt.Fprintln(w, "  ⚠️  Not found (will be created by the first change)")
	case result.Valid:
		fmt.Fprintf(w, "  ✅ Valid (%s format, %d tasks, schema: %s)\n", result.Format, result.Tasks, result.Schema)
		if result.Format == storage.FormatLegacy {
			fmt.Fprintln(w, "  ⚠️  Legacy format, the next change rewrites it in the current format")
		}
	default:
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		allOK = false
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}

	if *verbose && result.Valid && result.Exists {
		s, err := a.files.Load()
		if err == nil {
			fmt.Fprintf(w, "  Next id: %d\n", s.NextID())
			for t := range s.List(task.FilterAll) {
				fmt.Fprintf(w, "    - [%s] %d: %s\n", ui.StatusLabel(t), t.ID, t.Title)
			}
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// configCommand prints the effective configuration with the source of each value.
func (a *app) configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := a.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(a.out, config.ExampleConfig())
		return nil
	}

	fields := config.ConfigFields()
	width := 0
	for _, f := range fields {
		width = max(width, len(f))
	}
	for _, f := range fields {
		fmt.Fprintf(a.out, "%-*s = %-40q # %s\n", width, f, cws.Config.Value(f), cws.Sources[f])
	}

	var read []string
	for _, f := range []string{cws.Config.UserFile, cws.Config.ProjectFile, cws.Config.DotEnvFile} {
		if f != "" {
			read = append(read, f)
		}
	}
	if len(read) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "# files read:")
		for _, f := range read {
			fmt.Fprintf(a.out, "#   %s\n", f)
		}
	}
	return nil
}

// schemaCommand prints the built-in JSON Schema of the task file.
func (a *app) schemaCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	_, err := a.out.Write(storage.EmbeddedSchema())
	return err
}
