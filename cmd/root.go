// Package cmd implements the CLI command structure for tasks.
package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks-go/internal/config"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/storage"
	"github.com/nibzard/tasks-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the streams and loaded settings shared by every subcommand.
type app struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	logger *log.Logger
	files  *fileStore
}

// Run executes the tasks CLI.
func Run(ctx context.Context, args []string) error {
	a := &app{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	return a.run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.Usage = func() {
		printUsage(fs, a.errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, a.out)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	a.cfg = cws.Config
	a.logger = logging.NewFromConfig(a.errOut, a.cfg.LogLevel, a.cfg.LogFormat, a.cfg.LogTimestamps, a.cfg.LogCaller)
	a.logger.Debug("config loaded", "task_file", a.cfg.TaskFile, "config_file", cws.ConfigFile())

	gateway, err := storage.New(storage.Options{
		SchemaPath: a.cfg.SchemaFile,
		Logger:     a.logger,
	})
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	a.files = &fileStore{gateway: gateway, path: a.cfg.TaskFile}

	// With no subcommand, open the TUI on a terminal and list otherwise.
	subcommand := "ls"
	if ui.IsTTY(a.out) {
		subcommand = "tui"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "add":
		return a.addCommand(remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "done", "complete":
		return a.doneCommand(remainingArgs)
	case "rm", "remove":
		return a.rmCommand(remainingArgs)
	case "clear":
		return a.clearCommand(remainingArgs)
	case "stats":
		return a.statsCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(cws, remainingArgs)
	case "schema":
		return a.schemaCommand(remainingArgs)
	case "completion":
		return a.completionCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, a.out)
		return nil
	default:
		fmt.Fprintf(a.errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, a.errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newFlagSet returns a subcommand flag set that reports errors on stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tasks "+name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// confirm asks the user to type "yes". Anything else, including EOF, declines.
func (a *app) confirm(prompt string) bool {
	fmt.Fprintln(a.out, prompt)
	fmt.Fprint(a.out, "   Type 'yes' to confirm: ")
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(a.out)
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "yes"
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "tasks version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasks - a command-line task manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasks [global options] [command] [options] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add [-p priority] <title...>  Add a task (priority: low, medium, high)")
	fmt.Fprintln(w, "  ls [all|pending|completed]    List tasks (alias: list)")
	fmt.Fprintln(w, "  done <id>                     Mark a task completed (alias: complete)")
	fmt.Fprintln(w, "  rm [-y] <id>                  Remove a task (alias: remove)")
	fmt.Fprintln(w, "  clear [-y]                    Remove all completed tasks")
	fmt.Fprintln(w, "  stats                         Show statistics")
	fmt.Fprintln(w, "  tui                           Interactive terminal UI")
	fmt.Fprintln(w, "  doctor [-v]                   Check configuration and task file")
	fmt.Fprintln(w, "  config [-example]             Show effective configuration")
	fmt.Fprintln(w, "  schema                        Print the built-in task file schema")
	fmt.Fprintln(w, "  completion <shell>            Print shell completion (bash, zsh, fish, powershell)")
	fmt.Fprintln(w, "  version                       Show version information")
	fmt.Fprintln(w, "  help                          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, tasks opens the TUI on a terminal and lists tasks otherwise.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
