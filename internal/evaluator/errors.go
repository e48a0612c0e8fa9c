package evaluator

import "fmt"

// UnsupportedSyntaxError indicates that an expression lies outside the
// literal grammar the evaluator accepts. It carries the syntactic kind of
// the offending node and its source text for diagnostics.
type UnsupportedSyntaxError struct {
	Kind   string // Go AST node type (e.g., "*ast.CallExpr")
	Source string // Source text of the offending expression
}

func (e *UnsupportedSyntaxError) Error() string {
	return fmt.Sprintf("unhandled type: %q %s", e.Kind, e.Source)
}
