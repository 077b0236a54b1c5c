package storage

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasks-go/internal/utils"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	currentSchemaURL = "https://github.com/nibzard/tasks-go/schema/tasks.schema.json"
	legacySchemaURL  = "https://github.com/nibzard/tasks-go/schema/legacy.schema.json"
)

// EmbeddedSchema returns the built-in schema for the current file format.
func EmbeddedSchema() []byte {
	data, err := schemaFS.ReadFile("schema/tasks.schema.json")
	if err != nil {
		panic(fmt.Sprintf("embedded schema missing: %v", err))
	}
	return data
}

func compileEmbedded(url, name string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read embedded schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add embedded schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema %s: %w", name, err)
	}
	return schema, nil
}

// compileOverride compiles a user supplied schema file. Any failure is
// returned as a warning so the caller can fall back to the embedded schema.
func compileOverride(schemaPath string) (*jsonschema.Schema, string) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("schema file not found: %s, using built-in schema", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v, using built-in schema", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v, using built-in schema", err)
	}
	return schema, ""
}

// validateSchema checks a decoded JSON value and appends every failure to result.
func validateSchema(schema *jsonschema.Schema, v any, result *ValidationResult) {
	if err := schema.Validate(v); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
