package sidebar

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed sidebars.schema.json
var schemaJSON string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func sidebarSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("sidebars.schema.json", schemaJSON)
	})
	return compiledSchema, schemaErr
}

// SchemaError reports a sidebar file that does not match the expected shape.
type SchemaError struct {
	File string
	// Pointer is the JSON pointer of the offending value, e.g. "/docs/1/items/0".
	Pointer string
	Detail  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File, e.Pointer, e.Detail)
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidSidebarFile
}

// checkSchema converts the YAML (or JSON) document to its JSON data model and
// validates it against the embedded schema.
func checkSchema(name string, data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSidebarFile, name, err)
	}
	var raw any
	if node.Kind != 0 {
		quoteScalarItems(&node)
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSidebarFile, name, err)
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSidebarFile, name, err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSidebarFile, name, err)
	}

	schema, err := sidebarSchema()
	if err != nil {
		return fmt.Errorf("compile sidebar schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepestCause(ve)
			pointer := leaf.InstanceLocation
			if pointer == "" {
				pointer = "/"
			}
			return &SchemaError{File: name, Pointer: pointer, Detail: leaf.Message}
		}
		return fmt.Errorf("%w: %s: %w", ErrInvalidSidebarFile, name, err)
	}
	return nil
}

// quoteScalarItems retags numeric and boolean list items as strings so that
// an unquoted id such as 404 is checked as the document id it decodes to.
func quoteScalarItems(n *yaml.Node) {
	for _, child := range n.Content {
		if n.Kind == yaml.SequenceNode && child.Kind == yaml.ScalarNode {
			switch child.Tag {
			case "!!int", "!!float", "!!bool":
				child.Tag = "!!str"
			}
		}
		quoteScalarItems(child)
	}
}

// deepestCause follows the first cause chain to the most specific failure.
func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
