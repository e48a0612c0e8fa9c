// Package loader turns source paths into parsed ASTs. It is the
// project/workspace collaborator of the extraction core: the core starts
// only once a fully parsed file is available and never touches the
// filesystem itself.
package loader

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

// File pairs a parsed AST with the path it was read from.
type File struct {
	Path string
	AST  *ast.File
}

// Package holds the parsed non-test Go files of one directory.
type Package struct {
	Name       string // package name from the first file
	ImportPath string // derived from the enclosing go.mod, "" outside a module
	Dir        string
	Files      []*File
}

// LoadFile parses the given Go source file and returns its AST.
func LoadFile(fset *token.FileSet, filename string) (*ast.File, error) {
	file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, &ParseError{Path: filename, Err: err}
	}
	return file, nil
}

// LoadDir parses every non-test Go file in a directory, in name order, and
// derives the package import path from the enclosing module, if any.
func LoadDir(fset *token.FileSet, dir string) (*Package, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	names, err := listGoFiles(absDir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, &PackageNotFoundError{Path: absDir}
	}

	pkg := &Package{Dir: absDir}
	for _, name := range names {
		path := filepath.Join(absDir, name)
		fileAst, err := LoadFile(fset, path)
		if err != nil {
			return nil, err
		}
		if pkg.Name == "" {
			pkg.Name = fileAst.Name.Name
		}
		pkg.Files = append(pkg.Files, &File{Path: path, AST: fileAst})
	}

	pkg.ImportPath = deriveImportPath(absDir)
	return pkg, nil
}

func listGoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// deriveImportPath climbs from dir to the nearest go.mod and joins the
// module path with the relative package directory. Outside a module it
// returns "".
func deriveImportPath(dir string) string {
	moduleDir, modulePath := findModule(dir)
	if moduleDir == "" {
		return ""
	}
	rel, err := filepath.Rel(moduleDir, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	if rel == "." {
		return modulePath
	}
	return modulePath + "/" + filepath.ToSlash(rel)
}

func findModule(dir string) (moduleDir, modulePath string) {
	for d := dir; ; {
		gomod := filepath.Join(d, "go.mod")
		if data, err := os.ReadFile(gomod); err == nil {
			mf, err := modfile.ParseLax(gomod, data, nil)
			if err != nil || mf.Module == nil {
				return "", ""
			}
			return d, mf.Module.Mod.Path
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", ""
		}
		d = parent
	}
}
