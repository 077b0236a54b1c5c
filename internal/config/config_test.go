// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/tasks-go/internal/task"
)

var taskEnvVars = []string{
	"TASKS_FILE",
	"TASKS_SCHEMA",
	"TASKS_CONFIRM",
	"TASKS_DEFAULT_PRIORITY",
	"TASKS_LOG_LEVEL",
	"TASKS_LOG_FORMAT",
	"TASKS_LOG_TIMESTAMPS",
	"TASKS_LOG_CALLER",
}

// isolate points HOME and the config dirs at a fresh temp tree, clears the
// TASKS_* variables and changes into an empty project directory.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	root := t.TempDir()
	home = filepath.Join(root, "home")
	project = filepath.Join(root, "project")
	for _, dir := range []string{home, project} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "xdg"))
	t.Setenv("APPDATA", filepath.Join(root, "appdata"))
	for _, key := range taskEnvVars {
		t.Setenv(key, "")
	}
	t.Chdir(project)
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TaskFile != DefaultTaskFile {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, DefaultTaskFile)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
	if cfg.Confirm != true {
		t.Errorf("Confirm: got %v, want true", cfg.Confirm)
	}
	if cfg.Priority() != task.PriorityMedium {
		t.Errorf("Priority: got %q, want Medium", cfg.Priority())
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "text" {
		t.Errorf("logging: got %q/%q, want warn/text", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadWithoutAnyFiles(t *testing.T) {
	_, project := isolate(t)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}

	cfg := cws.Config
	if cfg.ProjectRoot != project {
		t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, project)
	}
	if want := filepath.Join(project, DefaultTaskFile); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
	for _, field := range ConfigFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.ConfigFile() != "" {
		t.Errorf("ConfigFile: got %q, want none", cws.ConfigFile())
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TASKS_FILE", "custom-tasks.json")
	t.Setenv("TASKS_CONFIRM", "no")
	t.Setenv("TASKS_DEFAULT_PRIORITY", "H")
	t.Setenv("TASKS_LOG_LEVEL", "debug")
	t.Setenv("TASKS_LOG_TIMESTAMPS", "1")

	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}
	loadFromEnv(cfg, &envLookup{}, sources)

	if cfg.TaskFile != "custom-tasks.json" {
		t.Errorf("TaskFile: got %q, want custom-tasks.json", cfg.TaskFile)
	}
	if cfg.Confirm {
		t.Error("Confirm: got true, want false")
	}
	if cfg.DefaultPriority != "H" {
		t.Errorf("DefaultPriority: got %q, want H", cfg.DefaultPriority)
	}
	if cfg.Priority() != task.PriorityHigh {
		t.Errorf("Priority: got %q, want High", cfg.Priority())
	}
	if cfg.LogLevel != "debug" || !cfg.LogTimestamps {
		t.Errorf("logging: got level %q timestamps %v", cfg.LogLevel, cfg.LogTimestamps)
	}
	for _, field := range []string{"task_file", "confirm", "default_priority", "log_level", "log_timestamps"} {
		if sources[field] != SourceEnv {
			t.Errorf("source of %s: got %q, want environment", field, sources[field])
		}
	}
	if _, ok := sources["log_format"]; ok {
		t.Error("log_format was not set and should have no source")
	}
}

func TestDotEnvFillsOnlyUnsetVariables(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, ".env"), strings.Join([]string{
		"TASKS_FILE=from-dotenv.json",
		"TASKS_LOG_FORMAT=json",
		"# comment",
		`TASKS_DEFAULT_PRIORITY="low"`,
	}, "\n"))
	t.Setenv("TASKS_FILE", "from-env.json")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if want := filepath.Join(project, "from-env.json"); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
	if cws.Sources["task_file"] != SourceEnv {
		t.Errorf("source of task_file: got %q, want environment", cws.Sources["task_file"])
	}
	if cfg.LogFormat != "json" || cws.Sources["log_format"] != SourceDotEnv {
		t.Errorf("log_format: got %q from %q, want json from .env file", cfg.LogFormat, cws.Sources["log_format"])
	}
	if cfg.DefaultPriority != "low" {
		t.Errorf("DefaultPriority: got %q, want low", cfg.DefaultPriority)
	}
	if cfg.DotEnvFile != filepath.Join(project, ".env") {
		t.Errorf("DotEnvFile: got %q", cfg.DotEnvFile)
	}
	if _, set := os.LookupEnv("TASKS_LOG_FORMAT"); set && os.Getenv("TASKS_LOG_FORMAT") != "" {
		t.Error(".env values must not leak into the process environment")
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "tasks.toml")
	writeFile(t, configFile, `task_file = "custom.json"
confirm = false
log_caller = true
`)

	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}
	if err := loadConfigFile(cfg, configFile, sources, SourceProjFile); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.TaskFile != "custom.json" {
		t.Errorf("TaskFile: got %q, want custom.json", cfg.TaskFile)
	}
	if cfg.Confirm {
		t.Error("Confirm: got true, want false")
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: got false, want true")
	}
	if cfg.DefaultPriority != DefaultPriority {
		t.Errorf("DefaultPriority should keep its default, got %q", cfg.DefaultPriority)
	}

	wantSources := map[string]ConfigSource{
		"task_file":  SourceProjFile,
		"confirm":    SourceProjFile,
		"log_caller": SourceProjFile,
	}
	for field, want := range wantSources {
		if sources[field] != want {
			t.Errorf("source of %s: got %q, want %q", field, sources[field], want)
		}
	}
	if len(sources) != len(wantSources) {
		t.Errorf("unexpected sources recorded: %v", sources)
	}
}

func TestLoadConfigFileRejectsUnknownKeys(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "tasks.toml")
	writeFile(t, configFile, `task_file = "a.json"
max_iterations = 3
`)

	cfg := &Config{}
	err := loadConfigFile(cfg, configFile, map[string]ConfigSource{}, SourceUserFile)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "max_iterations") {
		t.Errorf("error should name the key, got %v", err)
	}
}

func TestLoadWithSourcesLayering(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, ".tasks", "tasks.toml"), `default_priority = "high"
log_level = "info"
task_file = "user.json"
`)
	writeFile(t, filepath.Join(project, "tasks.toml"), `task_file = "data/tasks.json"
`)
	writeFile(t, filepath.Join(project, ".env"), "TASKS_LOG_FORMAT=logfmt\n")
	t.Setenv("TASKS_CONFIRM", "false")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"-log-level", "debug", "add", "Buy milk"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	checks := []struct {
		field      string
		wantValue  string
		wantSource ConfigSource
	}{
		{"task_file", filepath.Join(project, "data", "tasks.json"), SourceProjFile},
		{"default_priority", "high", SourceUserFile},
		{"log_level", "debug", SourceFlag},
		{"log_format", "logfmt", SourceDotEnv},
		{"confirm", "false", SourceEnv},
		{"schema_file", "", SourceDefault},
	}
	for _, c := range checks {
		t.Run(c.field, func(t *testing.T) {
			if got := cfg.Value(c.field); got != c.wantValue {
				t.Errorf("value: got %q, want %q", got, c.wantValue)
			}
			if got := cws.Sources[c.field]; got != c.wantSource {
				t.Errorf("source: got %q, want %q", got, c.wantSource)
			}
		})
	}

	if got := fs.Args(); !slices.Equal(got, []string{"add", "Buy milk"}) {
		t.Errorf("remaining args: got %v", got)
	}
	if cws.ConfigFile() != filepath.Join(project, "tasks.toml") {
		t.Errorf("ConfigFile: got %q", cws.ConfigFile())
	}
	if cfg.UserFile != filepath.Join(home, ".tasks", "tasks.toml") {
		t.Errorf("UserFile: got %q", cfg.UserFile)
	}
}

func TestHiddenProjectConfig(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, ".tasks.toml"), `confirm = false`)

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if cws.Config.Confirm {
		t.Error(".tasks.toml should be read when tasks.toml is absent")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{"bad priority", map[string]string{"TASKS_DEFAULT_PRIORITY": "urgent"}, nil, "default_priority"},
		{"bad log level", nil, []string{"-log-level", "chatty"}, "log_level"},
		{"bad log format", map[string]string{"TASKS_LOG_FORMAT": "yaml"}, nil, "log_format"},
		{"empty task file", nil, []string{"-file", " "}, "task_file"},
		{"unknown flag", nil, []string{"-nope"}, "parsing flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(&strings.Builder{})
			_, err := LoadWithSources(fs, tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestFinalizeNormalizes(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.ProjectRoot = t.TempDir()
	cfg.DefaultPriority = "3"
	cfg.LogLevel = " INFO "
	cfg.SchemaFile = "schema.json"

	if err := finalizeConfig(cfg); err != nil {
		t.Fatalf("finalizeConfig: %v", err)
	}
	if cfg.DefaultPriority != "high" {
		t.Errorf("DefaultPriority: got %q, want high", cfg.DefaultPriority)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if want := filepath.Join(cfg.ProjectRoot, "schema.json"); cfg.SchemaFile != want {
		t.Errorf("SchemaFile: got %q, want %q", cfg.SchemaFile, want)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TASKS_TEST_DIR", filepath.Join(home, "srv"))

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"~other/tasks.json", "~other/tasks.json"},
		{"$TASKS_TEST_DIR/tasks.json", filepath.Join(home, "srv") + "/tasks.json"},
		{"${TASKS_TEST_DIR}/x.json", filepath.Join(home, "srv") + "/x.json"},
		{"$TASKS_TEST_UNSET/x.json", "/x.json"},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	args := []string{
		"-file", "flag-tasks.json",
		"-schema", "strict.json",
		"-log-format", "json",
		"ls", "pending",
	}

	if err := parseFlags(cfg, fs, args, sources); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.TaskFile != "flag-tasks.json" {
		t.Errorf("TaskFile: got %q, want flag-tasks.json", cfg.TaskFile)
	}
	if cfg.SchemaFile != "strict.json" {
		t.Errorf("SchemaFile: got %q, want strict.json", cfg.SchemaFile)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel should be untouched, got %q", cfg.LogLevel)
	}
	if _, ok := sources["log_level"]; ok {
		t.Error("unset flag should not record a source")
	}
	if sources["task_file"] != SourceFlag {
		t.Errorf("source of task_file: got %q, want flag", sources["task_file"])
	}
	if got := fs.Args(); !slices.Equal(got, []string{"ls", "pending"}) {
		t.Errorf("remaining args: got %v", got)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"off", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := boolFromString(tt.input)
			if got != tt.want {
				t.Errorf("boolFromString(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if len(md.Undecoded()) > 0 {
		t.Errorf("example config has unknown keys: %v", md.Undecoded())
	}
	want := &Config{}
	setDefaults(want)
	if *cfg != *want {
		t.Errorf("example config should match the defaults:\ngot  %+v\nwant %+v", *cfg, *want)
	}
}
