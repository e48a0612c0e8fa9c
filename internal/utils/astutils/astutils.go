package astutils

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
)

// SourceText renders an AST node back to Go source text. It is used for
// diagnostics only; the rendering is gofmt-shaped, not a byte-exact copy of
// the original file.
func SourceText(node ast.Node) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), node); err != nil {
		return fmt.Sprintf("<unprintable: %T>", node)
	}
	return buf.String()
}
