package playground

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://schemas.todo-sync.local/"

// Response schemas
const (
	SchemaUsers     = "users.json"
	SchemaUserTasks = "user_tasks.json"
	SchemaTask      = "task.json"
)

// Schemas holds the compiled response schemas.
type Schemas struct {
	byName map[string]*jsonschema.Schema
}

// LoadSchemas compiles every embedded response schema.
func LoadSchemas() (*Schemas, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	for _, entry := range entries {
		data, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", entry.Name(), err)
		}
		if err := compiler.AddResource(schemaBaseURL+entry.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", entry.Name(), err)
		}
	}

	schemas := &Schemas{byName: make(map[string]*jsonschema.Schema, len(entries))}
	for _, entry := range entries {
		schema, err := compiler.Compile(schemaBaseURL + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid schema %s: %w", entry.Name(), err)
		}
		schemas.byName[entry.Name()] = schema
	}
	return schemas, nil
}

// Validate checks a raw JSON document against the named schema.
func (s *Schemas) Validate(name string, body []byte) error {
	schema, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%s", describeSchemaError(err))
	}
	return nil
}

// describeSchemaError flattens a validation error tree into its leaf messages.
func describeSchemaError(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}

	var messages []string
	collectSchemaErrors(&messages, ve)
	if len(messages) == 0 {
		return ve.Message
	}
	return strings.Join(messages, "; ")
}

func collectSchemaErrors(messages *[]string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(messages, cause)
	}
}
