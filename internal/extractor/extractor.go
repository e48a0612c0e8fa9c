// Package extractor drives a single extraction pass: locate the
// configuration declarations of a parsed file, evaluate them, merge the two
// sources and validate the result. Either the whole extraction succeeds, or
// it fails atomically, or it reports deliberate absence; there are no partial
// results.
package extractor

import (
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"

	"github.com/calumari/jwalk"

	"github.com/statconf/statconf/internal/analyzer"
	"github.com/statconf/statconf/internal/evaluator"
	"github.com/statconf/statconf/internal/schema"
)

// Options controls one extraction pass. The zero value uses the base schema,
// the default config identifier and the default allow-list.
type Options struct {
	Schema     *schema.Schema     // nil means schema.Base()
	ConfigName string             // "" means analyzer.DefaultConfigName
	AllowList  analyzer.AllowList // nil means analyzer.DefaultAllowList()
}

// Source records a declaration that contributed to the merged configuration.
type Source struct {
	Name string    // declared identifier (e.g., "Config", "MaxDuration")
	Kind string    // "config" or "export"
	Pos  token.Pos // position of the declaration
}

const (
	SourceConfig = "config"
	SourceExport = "export"
)

// Result is a validated merged configuration. Values preserves source
// declaration order and is freshly allocated, carrying no references into
// the parse tree.
type Result struct {
	Values  jwalk.D
	Sources []Source
}

// Extract runs the full pipeline on one parsed file. It returns (nil, nil)
// when the file declares no configuration: absence is a valid, common case,
// distinct from syntax or validation failures.
func Extract(file *ast.File, opts Options) (*Result, error) {
	allow := opts.AllowList
	if allow == nil {
		allow = analyzer.DefaultAllowList()
	}

	exports := analyzer.LocateNamedExports(file, allow)
	configLit, configFound := analyzer.LocateConfigObject(file, opts.ConfigName)
	if !configFound && len(exports) == 0 {
		return nil, nil
	}

	result := &Result{}

	// Named exports first; a duplicate name keeps its first position and
	// takes the value of the last declaration.
	for _, exp := range exports {
		val, err := evaluator.EvaluateScalar(exp.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate named export %s: %w", exp.Name, err)
		}
		result.Values = upsert(result.Values, exp.Key, val)
		result.Sources = append(result.Sources, Source{Name: exp.Name, Kind: SourceExport, Pos: exp.Pos})
	}

	// Overlay the config object; its entries win on key collision.
	if configFound {
		val, err := evaluator.Evaluate(configLit)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate config object: %w", err)
		}
		entries, ok := val.(jwalk.D)
		if !ok {
			return nil, fmt.Errorf("config object evaluated to %T, expected an object", val)
		}
		for _, e := range entries {
			result.Values = upsert(result.Values, e.Key, e.Value)
		}
		result.Sources = append(result.Sources, Source{Name: configName(opts), Kind: SourceConfig, Pos: configLit.Pos()})
	}

	sch := opts.Schema
	if sch == nil {
		sch = schema.Base()
	}
	if err := sch.Validate(evaluator.Plain(result.Values)); err != nil {
		return nil, err
	}

	slog.Debug("extracted configuration", "keys", len(result.Values), "sources", len(result.Sources))
	return result, nil
}

func configName(opts Options) string {
	if opts.ConfigName != "" {
		return opts.ConfigName
	}
	return analyzer.DefaultConfigName
}

// upsert adds or replaces a key, keeping the position of its first
// occurrence.
func upsert(d jwalk.D, key string, val any) jwalk.D {
	for i, e := range d {
		if e.Key == key {
			d[i].Value = val
			return d
		}
	}
	return append(d, jwalk.E{Key: key, Value: val})
}
