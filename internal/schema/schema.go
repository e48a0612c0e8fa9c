// Package schema wraps the external JSON Schema validator the extractor
// hands merged configuration values to. The validator is a collaborator, not
// part of the extraction core: it either accepts a value or reports a
// validation error, and the extractor propagates that verbatim.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// baseSchemaDoc describes the default configuration shape. All fields are
// optional and unknown fields are accepted; a caller with stricter needs
// supplies its own schema.
const baseSchemaDoc = `{
	"type": "object",
	"properties": {
		"runtime": {"type": "string"},
		"memory": {"type": "number"},
		"maxDuration": {"type": "number"},
		"regions": {
			"anyOf": [
				{"type": "array", "items": {"type": "string"}},
				{"enum": ["all", "default", "auto"]}
			]
		}
	}
}`

// Schema is a compiled shape description for configuration values.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles a JSON Schema document.
func Compile(doc string) (*Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.schema.json", strings.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := c.Compile("config.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// MustCompile is Compile for schema documents known to be valid at build
// time; it panics on error.
func MustCompile(doc string) *Schema {
	s, err := Compile(doc)
	if err != nil {
		panic(err)
	}
	return s
}

var base = MustCompile(baseSchemaDoc)

// Base returns the built-in base schema, used when the caller supplies none.
func Base() *Schema {
	return base
}

// Validate checks a plain value (maps, slices, scalars) against the schema.
// The returned error wraps the validator's *jsonschema.ValidationError.
func (s *Schema) Validate(v any) error {
	if err := s.compiled.Validate(v); err != nil {
		return fmt.Errorf("configuration does not match schema: %w", err)
	}
	return nil
}

// AsValidationError unwraps err to the validator's error type, if any.
func AsValidationError(err error) (*jsonschema.ValidationError, bool) {
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
