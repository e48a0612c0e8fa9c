// Package evaluator converts literal Go expressions into plain in-memory
// values without executing any code. It is total over a deliberately small
// grammar: strings, numbers, booleans, nil, slice literals and string-keyed
// map literals. Everything else is rejected with an UnsupportedSyntaxError
// rather than silently defaulted, so configuration can never be dropped on
// the floor unnoticed.
package evaluator

import (
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"
	"strconv"

	"github.com/calumari/jwalk"

	"github.com/statconf/statconf/internal/utils/astutils"
)

// Evaluate converts a literal expression into its in-memory value:
// string, int64, float64, bool, nil, jwalk.A for slice literals, or
// jwalk.D for string-keyed map literals (entries in source order).
func Evaluate(expr ast.Expr) (any, error) {
	return evaluate(expr, nil)
}

// EvaluateScalar is the narrower grammar used for named top-level exports:
// only string and numeric literals (including negated numerics) are
// accepted. Booleans, nil and composite literals are hard failures here.
func EvaluateScalar(expr ast.Expr) (any, error) {
	switch v := expr.(type) {
	case *ast.BasicLit:
		switch v.Kind {
		case token.STRING, token.INT, token.FLOAT:
			return evaluateBasicLit(v)
		}
	case *ast.UnaryExpr:
		if v.Op == token.SUB {
			if lit, ok := v.X.(*ast.BasicLit); ok && (lit.Kind == token.INT || lit.Kind == token.FLOAT) {
				return negate(lit)
			}
		}
	}
	return nil, unsupported(expr)
}

// evaluate dispatches on the node kind. elemType is the element type
// inherited from an enclosing composite literal, used to resolve nested
// literals whose type is elided (e.g. [][]string{{"a"}}).
func evaluate(expr ast.Expr, elemType ast.Expr) (any, error) {
	switch v := expr.(type) {
	case *ast.BasicLit:
		return evaluateBasicLit(v)

	case *ast.Ident:
		switch v.Name {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "nil":
			return nil, nil
		}
		// No identifier other than the keyword-like literals is resolvable
		// without executing code.
		return nil, unsupported(expr)

	case *ast.UnaryExpr:
		if v.Op == token.SUB {
			if lit, ok := v.X.(*ast.BasicLit); ok && (lit.Kind == token.INT || lit.Kind == token.FLOAT) {
				return negate(lit)
			}
		}
		return nil, unsupported(expr)

	case *ast.CompositeLit:
		typ := v.Type
		if typ == nil {
			typ = elemType
		}
		switch t := typ.(type) {
		case *ast.ArrayType:
			return evaluateArray(v, t)
		case *ast.MapType:
			return evaluateMap(v, t)
		}
		return nil, unsupported(expr)

	default:
		return nil, unsupported(expr)
	}
}

func evaluateBasicLit(lit *ast.BasicLit) (any, error) {
	switch lit.Kind {
	case token.STRING:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid string literal %s: %w", lit.Value, err)
		}
		return s, nil
	case token.INT:
		i, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %s: %w", lit.Value, err)
		}
		return i, nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %s: %w", lit.Value, err)
		}
		return f, nil
	}
	return nil, unsupported(lit)
}

func negate(lit *ast.BasicLit) (any, error) {
	val, err := evaluateBasicLit(lit)
	if err != nil {
		return nil, err
	}
	switch n := val.(type) {
	case int64:
		return -n, nil
	case float64:
		return -n, nil
	}
	return nil, unsupported(lit)
}

// evaluateArray evaluates a slice/array composite literal into a jwalk.A,
// preserving element order. The result length equals the element count.
func evaluateArray(lit *ast.CompositeLit, typ *ast.ArrayType) (any, error) {
	result := make(jwalk.A, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		val, err := evaluate(elt, typ.Elt)
		if err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, nil
}

// evaluateMap evaluates a string-keyed map composite literal into a jwalk.D.
// Entries keep source order; a duplicate key keeps the position of its first
// occurrence but takes the value of the last one.
func evaluateMap(lit *ast.CompositeLit, typ *ast.MapType) (any, error) {
	if keyIdent, ok := typ.Key.(*ast.Ident); !ok || keyIdent.Name != "string" {
		return nil, unsupported(lit)
	}

	result := make(jwalk.D, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			// Positional or otherwise malformed entries are never skipped
			// silently: dropping configuration is a hazard.
			return nil, unsupported(elt)
		}
		keyLit, ok := kv.Key.(*ast.BasicLit)
		if !ok || keyLit.Kind != token.STRING {
			// Computed keys (constants, selectors, conversions) would need
			// execution to resolve.
			return nil, unsupported(kv.Key)
		}
		key, err := strconv.Unquote(keyLit.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid map key %s: %w", keyLit.Value, err)
		}
		val, err := evaluate(kv.Value, typ.Value)
		if err != nil {
			return nil, err
		}

		if i := indexOf(result, key); i >= 0 {
			slog.Debug("duplicate map key, last value wins", "key", key)
			result[i].Value = val
			continue
		}
		result = append(result, jwalk.E{Key: key, Value: val})
	}
	return result, nil
}

func indexOf(d jwalk.D, key string) int {
	for i, e := range d {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func unsupported(node ast.Node) *UnsupportedSyntaxError {
	return &UnsupportedSyntaxError{
		Kind:   fmt.Sprintf("%T", node),
		Source: astutils.SourceText(node),
	}
}
