// Package analyzer locates configuration declarations in a parsed Go file:
// an exported `Config` variable bound to a string-keyed map literal, and
// exported constants whose names appear in an allow-list. Declarations that
// do not satisfy the export and immutability checks are excluded, never
// reported as errors.
package analyzer

import (
	"go/ast"
	"go/token"
	"log/slog"

	"github.com/statconf/statconf/internal/utils/astutils"
)

// DefaultConfigName is the identifier the config-object locator looks for
// when the caller does not override it.
const DefaultConfigName = "Config"

// NamedExport is a top-level constant declaration recognized by the
// allow-list, paired with the configuration key it contributes to.
type NamedExport struct {
	Name  string   // Declared identifier (e.g., "MaxDuration")
	Key   string   // Configuration key (e.g., "maxDuration")
	Value ast.Expr // Initializer expression, evaluated by the caller
	Pos   token.Pos
}

// LocateConfigObject returns the first (source order) top-level `var`
// declaration bound to the given exported name whose initializer is a
// string-keyed map composite literal. The variable must not be reassigned or
// mutated anywhere in the file; a mutated binding is treated as absent, as is
// a binding to any other initializer kind. Absence is not an error.
func LocateConfigObject(file *ast.File, name string) (*ast.CompositeLit, bool) {
	if name == "" {
		name = DefaultConfigName
	}
	if !ast.IsExported(name) {
		return nil, false
	}

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}
		for _, spec := range genDecl.Specs {
			valSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, ident := range valSpec.Names {
				if ident.Name != name || len(valSpec.Values) <= i {
					continue
				}
				compLit, ok := valSpec.Values[i].(*ast.CompositeLit)
				if !ok || !isStringKeyedMap(compLit.Type) {
					slog.Debug("config binding has a non-object initializer, treating as absent",
						"name", name, "initializer", astutils.SourceText(valSpec.Values[i]))
					continue
				}
				if isMutated(file, name) {
					slog.Debug("config binding is mutated in this file, treating as absent", "name", name)
					continue
				}
				return compLit, true
			}
		}
	}
	return nil, false
}

// LocateNamedExports returns the top-level constant declarations whose names
// belong to the allow-list, in source order. Constants are immutable bindings
// by construction; the exported-name check still applies. Duplicates are kept;
// the merge step decides precedence.
func LocateNamedExports(file *ast.File, allow AllowList) []NamedExport {
	var exports []NamedExport
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.CONST {
			continue
		}
		for _, spec := range genDecl.Specs {
			valSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, ident := range valSpec.Names {
				if !ast.IsExported(ident.Name) || len(valSpec.Values) <= i {
					continue
				}
				key, ok := allow.KeyFor(ident.Name)
				if !ok {
					continue
				}
				exports = append(exports, NamedExport{
					Name:  ident.Name,
					Key:   key,
					Value: valSpec.Values[i],
					Pos:   ident.Pos(),
				})
			}
		}
	}
	return exports
}

// isStringKeyedMap reports whether a composite literal type is
// map[string]T for some T (typically `any`).
func isStringKeyedMap(typ ast.Expr) bool {
	mapType, ok := typ.(*ast.MapType)
	if !ok {
		return false
	}
	keyIdent, ok := mapType.Key.(*ast.Ident)
	return ok && keyIdent.Name == "string"
}

// isMutated reports whether the named identifier appears as an assignment or
// inc/dec target anywhere in the file. The check is scope-insensitive: a
// shadowing local assignment also counts, which errs on the side of treating
// the binding as mutable.
func isMutated(file *ast.File, name string) bool {
	mutated := false
	ast.Inspect(file, func(n ast.Node) bool {
		switch stmt := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range stmt.Lhs {
				if ident, ok := lhs.(*ast.Ident); ok && ident.Name == name {
					mutated = true
					return false
				}
			}
		case *ast.IncDecStmt:
			if ident, ok := stmt.X.(*ast.Ident); ok && ident.Name == name {
				mutated = true
				return false
			}
		}
		return !mutated
	})
	return mutated
}
