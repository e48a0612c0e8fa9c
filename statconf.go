// Package statconf extracts a statically-declared configuration object from
// a Go source file by walking its AST and evaluating literal expressions,
// without executing any code. It recognizes an exported `Config` variable
// bound to a string-keyed map literal and a small allow-list of exported
// constants (e.g. `MaxDuration`), merges the two (Config wins on key
// collision) and validates the result against a JSON Schema.
package statconf

import (
	"go/token"

	"github.com/calumari/jwalk"

	"github.com/statconf/statconf/internal/analyzer"
	"github.com/statconf/statconf/internal/evaluator"
	"github.com/statconf/statconf/internal/extractor"
	"github.com/statconf/statconf/internal/loader"
	"github.com/statconf/statconf/internal/metadata"
	"github.com/statconf/statconf/internal/schema"
)

// Config is a validated configuration extracted from one source file. Values
// keeps the source declaration order of its keys.
type Config struct {
	Values  jwalk.D
	Sources []extractor.Source
}

// Option customizes an extraction.
type Option func(*extractor.Options)

// WithSchema replaces the base schema. The document must be a JSON Schema.
func WithSchema(s *Schema) Option {
	return func(o *extractor.Options) { o.Schema = s }
}

// WithConfigName changes the identifier the config-object locator looks for
// (default "Config").
func WithConfigName(name string) Option {
	return func(o *extractor.Options) { o.ConfigName = name }
}

// WithExport adds a named export to the allow-list. key may be empty, in
// which case the declared name with its first letter lowercased is used.
func WithExport(name, key string) Option {
	return func(o *extractor.Options) {
		if o.AllowList == nil {
			o.AllowList = analyzer.DefaultAllowList()
		}
		o.AllowList = append(o.AllowList, analyzer.AllowedExport{Name: name, Key: key})
	}
}

// Schema is a compiled configuration shape description.
type Schema = schema.Schema

// CompileSchema compiles a JSON Schema document for use with WithSchema.
func CompileSchema(doc string) (*Schema, error) {
	return schema.Compile(doc)
}

// ExtractFile parses one Go source file and extracts its configuration.
// It returns (nil, nil) when the file declares no configuration.
func ExtractFile(path string, opts ...Option) (*Config, error) {
	fset := token.NewFileSet()
	fileAst, err := loader.LoadFile(fset, path)
	if err != nil {
		return nil, err
	}

	var exOpts extractor.Options
	for _, opt := range opts {
		opt(&exOpts)
	}

	result, err := extractor.Extract(fileAst, exOpts)
	if err != nil || result == nil {
		return nil, err
	}
	return &Config{Values: result.Values, Sources: result.Sources}, nil
}

// Decode returns the typed view of the configuration, covering the fields of
// the base schema.
func (c *Config) Decode() (*metadata.FunctionConfig, error) {
	plain, _ := evaluator.Plain(c.Values).(map[string]any)
	return metadata.Decode(plain)
}

// MarshalJSON renders the configuration with keys in source declaration
// order.
func (c *Config) MarshalJSON() ([]byte, error) {
	return evaluator.MarshalOrdered(c.Values)
}
