package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/task"
)

// Format identifies which on-disk layout a file used.
type Format string

const (
	FormatNone    Format = ""        // file did not exist
	FormatCurrent Format = "current" // versioned object
	FormatLegacy  Format = "legacy"  // bare array of the first release
)

// Options configures a Gateway.
type Options struct {
	// SchemaPath overrides the embedded schema for the current format.
	// A missing or invalid file falls back to the embedded schema with a warning.
	SchemaPath string
	// Logger receives integrity warnings and migration notices. Nil discards them.
	Logger *log.Logger
	// FileMode is used for newly created task files. Defaults to 0644.
	FileMode os.FileMode
	// Location is the time zone legacy timestamps are read in. Defaults to time.Local.
	Location *time.Location
	// StoreOptions are passed to every store the gateway builds.
	StoreOptions []task.Option
}

// Gateway moves a task.Store to and from a JSON file.
type Gateway struct {
	current    *jsonschema.Schema
	legacy     *jsonschema.Schema
	schemaName string
	logger     *log.Logger
	fileMode   os.FileMode
	location   *time.Location
	storeOpts  []task.Option
}

// ValidationResult contains the outcome of inspecting a task file.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	Exists   bool   // false when the file was not found
	Format   Format // layout detected
	Schema   string // "built-in" or the override path
	Tasks    int    // number of records decoded
}

// New returns a Gateway with compiled schemas.
func New(opts Options) (*Gateway, error) {
	g := &Gateway{
		logger:     opts.Logger,
		fileMode:   opts.FileMode,
		location:   opts.Location,
		storeOpts:  opts.StoreOptions,
		schemaName: "built-in",
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	if g.fileMode == 0 {
		g.fileMode = 0644
	}
	if g.location == nil {
		g.location = time.Local
	}

	var err error
	if g.current, err = compileEmbedded(currentSchemaURL, "schema/tasks.schema.json"); err != nil {
		return nil, err
	}
	if g.legacy, err = compileEmbedded(legacySchemaURL, "schema/legacy.schema.json"); err != nil {
		return nil, err
	}

	if opts.SchemaPath != "" {
		schema, warning := compileOverride(opts.SchemaPath)
		if warning != "" {
			g.logger.Warn(warning)
		} else {
			g.current = schema
			g.schemaName = opts.SchemaPath
		}
	}

	return g, nil
}

// Load reads the task file at path into a new store.
// A missing file yields an empty store. A file that exists but fails
// validation returns a *CorruptError; read failures return an *IOError.
func (g *Gateway) Load(path string) (*task.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.logger.Debug("task file not found, starting fresh", "path", path)
			return task.NewStore(g.storeOpts...), nil
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	store, result := g.decode(data)
	for _, w := range result.Warnings {
		g.logger.Warn(w, "path", path)
	}
	if !result.Valid {
		return nil, &CorruptError{Path: path, Problems: result.Errors}
	}
	if result.Format == FormatLegacy {
		g.logger.Info("migrated legacy task file", "path", path, "tasks", result.Tasks)
	}
	g.logger.Debug("loaded tasks", "path", path, "tasks", result.Tasks, "next_id", store.NextID())
	return store, nil
}

// Check inspects the task file without building a store for the caller.
// Unlike Load it never fails; everything found is reported in the result.
func (g *Gateway) Check(path string) *ValidationResult {
	data, err := os.ReadFile(path)
	if err != nil {
		result := newResult(g.schemaName)
		if os.IsNotExist(err) {
			return result
		}
		result.Exists = true
		result.Valid = false
		result.Errors = append(result.Errors, &IOError{Op: "read", Path: path, Err: err})
		return result
	}
	_, result := g.decode(data)
	return result
}

// Save writes every task in s to path, replacing the file atomically.
func (g *Gateway) Save(s *task.Store, path string) error {
	data, err := json.MarshalIndent(newDocument(s), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := writeFileAtomic(path, data, g.fileMode); err != nil {
		return err
	}
	g.logger.Debug("saved tasks", "path", path, "tasks", s.Len())
	return nil
}

func newResult(schemaName string) *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
		Schema:   schemaName,
	}
}

// decode validates and converts raw file contents. The store is nil whenever
// result.Valid is false.
func (g *Gateway) decode(data []byte) (*task.Store, *ValidationResult) {
	result := newResult(g.schemaName)
	result.Exists = true

	if len(bytes.TrimSpace(data)) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("file is empty")})
		return nil, result
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)})
		return nil, result
	}

	var (
		records []record
		nextID  int
	)
	switch raw.(type) {
	case map[string]any:
		result.Format = FormatCurrent
		validateSchema(g.current, raw, result)
		if !result.Valid {
			return nil, result
		}
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("decode task file: %w", err)})
			return nil, result
		}
		records, nextID = doc.Tasks, doc.NextID
	case []any:
		result.Format = FormatLegacy
		result.Schema = "built-in legacy"
		validateSchema(g.legacy, raw, result)
		if !result.Valid {
			return nil, result
		}
		records = decodeLegacy(data, g.location, result)
		if !result.Valid {
			return nil, result
		}
	default:
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("top-level value must be an object or an array, got %s", jsonKind(raw)),
		})
		return nil, result
	}

	tasks := make([]task.Task, 0, len(records))
	for i, r := range records {
		path := fmt.Sprintf("tasks[%d]", i)
		if result.Format == FormatLegacy {
			path = fmt.Sprintf("[%d]", i)
		}
		tasks = append(tasks, r.toTask(path, result))
	}

	store, err := task.Restore(tasks, nextID, g.storeOpts...)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err)
		return nil, result
	}
	result.Tasks = store.Len()
	return store, result
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
