package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envLookup resolves a variable from the real environment first and the
// .env file second, reporting which one supplied it.
type envLookup struct {
	dotenv map[string]string
}

// loadDotEnv reads dir/.env if present. A missing file is not an error.
func loadDotEnv(dir string) (*envLookup, string, error) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return &envLookup{}, "", nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return &envLookup{dotenv: values}, path, nil
}

func (e *envLookup) get(key string) (string, ConfigSource, bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, SourceEnv, true
	}
	if v, ok := e.dotenv[key]; ok && v != "" {
		return v, SourceDotEnv, true
	}
	return "", "", false
}

// loadFromEnv overrides config from environment variables and the .env file.
func loadFromEnv(cfg *Config, env *envLookup, sources map[string]ConfigSource) {
	set := func(field string, source ConfigSource) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v, src, ok := env.get("TASKS_FILE"); ok {
		cfg.TaskFile = v
		set("task_file", src)
	}
	if v, src, ok := env.get("TASKS_SCHEMA"); ok {
		cfg.SchemaFile = v
		set("schema_file", src)
	}
	if v, src, ok := env.get("TASKS_CONFIRM"); ok {
		cfg.Confirm = boolFromString(v)
		set("confirm", src)
	}
	if v, src, ok := env.get("TASKS_DEFAULT_PRIORITY"); ok {
		cfg.DefaultPriority = v
		set("default_priority", src)
	}

	// Logging configuration
	if v, src, ok := env.get("TASKS_LOG_LEVEL"); ok {
		cfg.LogLevel = v
		set("log_level", src)
	}
	if v, src, ok := env.get("TASKS_LOG_FORMAT"); ok {
		cfg.LogFormat = v
		set("log_format", src)
	}
	if v, src, ok := env.get("TASKS_LOG_TIMESTAMPS"); ok {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps", src)
	}
	if v, src, ok := env.get("TASKS_LOG_CALLER"); ok {
		cfg.LogCaller = boolFromString(v)
		set("log_caller", src)
	}
}
