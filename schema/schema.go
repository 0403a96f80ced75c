// Package schema validates decoded channel payloads against JSON schemas.
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// tabInfoSchema constrains the identity a child announces with LOADED.
const tabInfoSchema = `{
  "type": "object",
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "windowName": {"type": "string"},
    "parentName": {"type": "string"},
    "isSiteInsideFrame": {"type": "boolean"}
  }
}`

// ValidationError lists every schema violation of one document.
type ValidationError struct {
	Details []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed:\n  - %s", strings.Join(e.Details, "\n  - "))
}

// Validator checks generic decoded values against a compiled schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles schemaJSON.
func NewValidator(schemaJSON string) (*Validator, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("schema: compile: %w", err)
	}
	return &Validator{schema: s}, nil
}

// TabInfo returns a validator for LOADED payloads.
func TabInfo() *Validator {
	v, err := NewValidator(tabInfoSchema)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks value, which must be JSON-compatible (string-keyed maps,
// slices, scalars).
func (v *Validator) Validate(value any) error {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return fmt.Errorf("schema: validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return &ValidationError{Details: details}
}
