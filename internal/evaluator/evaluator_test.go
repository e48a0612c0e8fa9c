package evaluator

import (
	"errors"
	"fmt"
	"go/parser"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/calumari/jwalk"
)

func evaluateSrc(t *testing.T, src string) (any, error) {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q) failed: %v", src, err)
	}
	return Evaluate(expr)
}

func TestEvaluate_Scalars(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`"hello"`, "hello"},
		{`"with \"escapes\"\n"`, "with \"escapes\"\n"},
		{"`raw string`", "raw string"},
		{`42`, int64(42)},
		{`0x1F`, int64(31)},
		{`-7`, int64(-7)},
		{`3.14`, 3.14},
		{`-0.5`, -0.5},
		{`true`, true},
		{`false`, false},
		{`nil`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := evaluateSrc(t, tt.src)
			if err != nil {
				t.Fatalf("Evaluate(%s) failed: %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Evaluate(%s) = %v (%T), want %v (%T)", tt.src, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestEvaluate_Arrays(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want jwalk.A
	}{
		{"strings", `[]string{"us-east-1", "eu-west-1"}`, jwalk.A{"us-east-1", "eu-west-1"}},
		{"mixed", `[]any{"a", 1, true, nil}`, jwalk.A{"a", int64(1), true, nil}},
		{"empty", `[]string{}`, jwalk.A{}},
		{"nested elided type", `[][]string{{"a"}, {"b", "c"}}`, jwalk.A{jwalk.A{"a"}, jwalk.A{"b", "c"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluateSrc(t, tt.src)
			if err != nil {
				t.Fatalf("Evaluate(%s) failed: %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Evaluate(%s) = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Objects(t *testing.T) {
	got, err := evaluateSrc(t, `map[string]any{
		"runtime": "edge",
		"memory":  1024,
		"nested":  map[string]any{"deep": true},
		"list":    []string{"x"},
	}`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	want := jwalk.D{
		{Key: "runtime", Value: "edge"},
		{Key: "memory", Value: int64(1024)},
		{Key: "nested", Value: jwalk.D{{Key: "deep", Value: true}}},
		{Key: "list", Value: jwalk.A{"x"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Evaluate() = %#v, want %#v", got, want)
	}
}

// Key order in the evaluated mapping must match declaration order in the
// source, not any canonical ordering.
func TestEvaluate_ObjectKeyOrder(t *testing.T) {
	got, err := evaluateSrc(t, `map[string]any{"b": 1, "a": 2}`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	d := got.(jwalk.D)
	if d[0].Key != "b" || d[1].Key != "a" {
		t.Errorf("key order = [%s %s], want [b a]", d[0].Key, d[1].Key)
	}
}

func TestEvaluate_ObjectDuplicateKeys(t *testing.T) {
	got, err := evaluateSrc(t, `map[string]any{"a": 1, "b": 2, "a": 3}`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	want := jwalk.D{
		{Key: "a", Value: int64(3)},
		{Key: "b", Value: int64(2)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Evaluate() = %#v, want %#v", got, want)
	}
}

func TestEvaluate_ObjectElidedInSlice(t *testing.T) {
	got, err := evaluateSrc(t, `[]map[string]any{{"k": "v"}}`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	want := jwalk.A{jwalk.D{{Key: "k", Value: "v"}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Evaluate() = %#v, want %#v", got, want)
	}
}

func TestEvaluate_UnsupportedSyntax(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
	}{
		{"function call", `foo("bar")`, "*ast.CallExpr"},
		{"identifier", `someVar`, "*ast.Ident"},
		{"selector", `pkg.Value`, "*ast.SelectorExpr"},
		{"arithmetic", `1 + 2`, "*ast.BinaryExpr"},
		{"negated bool", `-true`, "*ast.UnaryExpr"},
		{"int-keyed map", `map[int]string{1: "a"}`, "*ast.CompositeLit"},
		{"struct literal", `Config{Name: "x"}`, "*ast.CompositeLit"},
		{"computed key", `map[string]any{key: 1}`, "*ast.Ident"},
		{"char literal", `'c'`, "*ast.BasicLit"},
		{"func literal", `func() {}`, "*ast.FuncLit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evaluateSrc(t, tt.src)
			if err == nil {
				t.Fatalf("Evaluate(%s) succeeded, want UnsupportedSyntaxError", tt.src)
			}
			var unsupported *UnsupportedSyntaxError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Evaluate(%s) error = %v, want *UnsupportedSyntaxError", tt.src, err)
			}
			if unsupported.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", unsupported.Kind, tt.kind)
			}
			if unsupported.Source == "" {
				t.Errorf("Source is empty, want offending source text")
			}
		})
	}
}

func TestUnsupportedSyntaxError_Message(t *testing.T) {
	_, err := evaluateSrc(t, `time.Now()`)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `unhandled type: "*ast.CallExpr"`) {
		t.Errorf("message %q missing kind", msg)
	}
	if !strings.Contains(msg, "time.Now()") {
		t.Errorf("message %q missing source text", msg)
	}
}

func TestEvaluateScalar(t *testing.T) {
	tests := []struct {
		src     string
		want    any
		wantErr bool
	}{
		{`"30s"`, "30s", false},
		{`30`, int64(30), false},
		{`1.5`, 1.5, false},
		{`-4`, int64(-4), false},
		{`true`, nil, true},
		{`nil`, nil, true},
		{`[]string{"a"}`, nil, true},
		{`map[string]any{}`, nil, true},
		{`someConst`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			astExpr, err := parser.ParseExpr(tt.src)
			if err != nil {
				t.Fatalf("ParseExpr failed: %v", err)
			}
			got, err := EvaluateScalar(astExpr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("EvaluateScalar(%s) succeeded with %v, want error", tt.src, got)
				}
				var unsupported *UnsupportedSyntaxError
				if !errors.As(err, &unsupported) {
					t.Errorf("error = %v, want *UnsupportedSyntaxError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("EvaluateScalar(%s) failed: %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EvaluateScalar(%s) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

// Round-trip: rendering an evaluated value back to literal syntax and
// evaluating again yields an equal value.
func TestEvaluate_RoundTrip(t *testing.T) {
	sources := []string{
		`map[string]any{"runtime": "edge", "memory": 1024, "flags": []any{true, nil, -2.5}}`,
		`[]string{"a", "b"}`,
		`map[string]any{"nested": map[string]any{"x": 1}}`,
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first, err := evaluateSrc(t, src)
			if err != nil {
				t.Fatalf("Evaluate(%s) failed: %v", src, err)
			}
			second, err := evaluateSrc(t, renderLiteral(first))
			if err != nil {
				t.Fatalf("Evaluate(render) failed: %v", err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip mismatch: %#v != %#v", first, second)
			}
		})
	}
}

// renderLiteral writes a value back using the supported literal grammar.
func renderLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case jwalk.A:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = renderLiteral(e)
		}
		return "[]any{" + strings.Join(parts, ", ") + "}"
	case jwalk.D:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = fmt.Sprintf("%s: %s", strconv.Quote(e.Key), renderLiteral(e.Value))
		}
		return "map[string]any{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", v)
}
