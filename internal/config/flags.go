package config

import (
	"flag"
)

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasks", flag.ContinueOnError)
	}

	var (
		taskFile, schemaFile string
		logLevel, logFormat  string
	)
	fs.StringVar(&taskFile, "file", cfg.TaskFile, "Path to task file")
	fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "Path to a JSON Schema overriding the built-in one")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	flagToSource := map[string]string{
		"file":       "task_file",
		"schema":     "schema_file",
		"log-level":  "log_level",
		"log-format": "log_format",
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagToSource[f.Name]
		if !ok {
			return
		}
		switch f.Name {
		case "file":
			cfg.TaskFile = taskFile
		case "schema":
			cfg.SchemaFile = schemaFile
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}
