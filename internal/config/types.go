package config

import (
	"github.com/nibzard/tasks-go/internal/task"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = ".env file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultTaskFile  = "tasks.json"
	DefaultPriority  = "medium"
	DefaultConfirm   = true
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for tasks.
type Config struct {
	// Paths
	TaskFile   string `toml:"task_file"`
	SchemaFile string `toml:"schema_file"` // empty uses the built-in schema

	// Behaviour
	Confirm         bool   `toml:"confirm"`
	DefaultPriority string `toml:"default_priority"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Computed
	ProjectRoot string `toml:"-"`
	UserFile    string `toml:"-"` // user config file that was read, if any
	ProjectFile string `toml:"-"` // project config file that was read, if any
	DotEnvFile  string `toml:"-"` // .env file that was read, if any
}

// Priority returns the configured default priority for new tasks.
// LoadWithSources has already validated it, so an invalid value only appears
// on a hand-built Config and falls back to task.DefaultPriority.
func (c *Config) Priority() task.Priority {
	p, err := task.ParsePriority(c.DefaultPriority)
	if err != nil {
		return task.DefaultPriority
	}
	return p
}
