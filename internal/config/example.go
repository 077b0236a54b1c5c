package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasks configuration file
# Values can be overridden by TASKS_* environment variables or CLI flags

# Task file (relative to the working directory, supports ~ and $VAR)
task_file = "tasks.json"

# JSON Schema overriding the built-in one (empty uses the built-in schema)
# schema_file = "tasks.schema.json"

# Ask "Type 'yes' to confirm" before rm and clear
confirm = true

# Priority for tasks added without -p: low, medium or high
default_priority = "medium"

# Logging (written to stderr)
log_level = "warn"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
