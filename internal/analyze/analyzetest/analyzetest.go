// Package analyzetest builds type graphs from in-memory sources for tests.
package analyzetest

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"newtype-generator/internal/analyze"
)

// BasicPath is the import path of the Basic package.
const BasicPath = "example.com/shapes/basic"

// Basic holds the types of examples/basic plus a few that only error paths use.
const Basic = `package basic

type Foo struct{ Value string }

type Bar struct{ Foo Foo }

type Baz struct{ Bar Bar }

type Label string

type Text string

type Count int

type Token interface{ isToken() }

type TokenAlpha string

func (TokenAlpha) isToken() {}

type TokenBeta struct{ N int }

func (*TokenBeta) isToken() {}

type Pair struct {
	A string
	B string
}

type Opaque struct{ value string }

type hidden string

func FooFromLabel(l Label) Foo { return Foo{Value: string(l)} }

func Describe(f Foo, n int) string { return f.Value }
`

// Source is one in-memory package.
type Source struct {
	Path string
	Code string
}

// Graph type-checks srcs in order and returns their type graph. Later
// sources may import earlier ones.
func Graph(t testing.TB, srcs ...Source) *analyze.TypeGraph {
	t.Helper()

	a := analyze.NewAnalyzer()
	imp := &mapImporter{pkgs: map[string]*types.Package{}, fallback: importer.Default()}
	fset := token.NewFileSet()

	for _, src := range srcs {
		f, err := parser.ParseFile(fset, src.Path+"/src.go", src.Code, parser.SkipObjectResolution)
		require.NoError(t, err)

		conf := types.Config{Importer: imp}
		pkg, err := conf.Check(src.Path, fset, []*ast.File{f}, nil)
		require.NoError(t, err)

		imp.pkgs[src.Path] = pkg
		require.NoError(t, a.AddPackage(pkg, "/src/"+src.Path))
	}

	return a.Graph()
}

// BasicGraph returns the graph of the Basic package.
func BasicGraph(t testing.TB) *analyze.TypeGraph {
	t.Helper()

	return Graph(t, Source{Path: BasicPath, Code: Basic})
}

type mapImporter struct {
	pkgs     map[string]*types.Package
	fallback types.Importer
}

func (m *mapImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := m.pkgs[path]; ok {
		return pkg, nil
	}

	if m.fallback == nil {
		return nil, fmt.Errorf("package %s not found", path)
	}

	return m.fallback.Import(path)
}
