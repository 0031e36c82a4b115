package analyze_test

import (
	"go/types"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/analyze/analyzetest"
)

func basicType(t *testing.T, g *analyze.TypeGraph, name string) *analyze.TypeInfo {
	t.Helper()

	info := g.GetType(analyze.TypeID{PkgPath: analyzetest.BasicPath, Name: name})
	require.NotNil(t, info, name)

	return info
}

func TestClassify(t *testing.T) {
	g := analyzetest.BasicGraph(t)

	tests := []struct {
		name  string
		shape analyze.Shape
		held  string
	}{
		{"Foo", analyze.ShapeStruct, "string"},
		{"Bar", analyze.ShapeStruct, "basic.Foo"},
		{"Label", analyze.ShapeDefined, "string"},
		{"Count", analyze.ShapeDefined, "int"},
		{"Token", analyze.ShapeUnion, ""},
		{"TokenBeta", analyze.ShapeStruct, "int"},
		{"Pair", analyze.ShapeOther, ""},
		{"Opaque", analyze.ShapeStruct, "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := basicType(t, g, tt.name)
			assert.Equal(t, tt.shape, info.Shape)

			if tt.held != "" {
				assert.Equal(t, tt.held, analyze.TypeString(info.Held))
			} else {
				assert.Nil(t, info.Held)
			}
		})
	}

	opaque := basicType(t, g, "Opaque")
	assert.False(t, opaque.Field.Exported)
	assert.False(t, basicType(t, g, "hidden").Exported())
}

func TestTypeGraph_Cases(t *testing.T) {
	g := analyzetest.BasicGraph(t)
	token := basicType(t, g, "Token")

	cases := g.Cases(token)
	require.Len(t, cases, 2)
	assert.Equal(t, "Alpha", cases[0].Tag)
	assert.False(t, cases[0].Pointer)
	assert.Equal(t, "Beta", cases[1].Tag)
	assert.True(t, cases[1].Pointer)

	c, err := g.Case(token, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "TokenAlpha", c.Type.ID.Name)

	c, err = g.Case(token, "TokenBeta")
	require.NoError(t, err)
	assert.Equal(t, "TokenBeta", c.Type.ID.Name)

	_, err = g.Case(token, "Gamma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no case "Gamma"`)

	_, err = g.Case(basicType(t, g, "Foo"), "Alpha")
	require.Error(t, err)
}

func TestTypeGraph_CasesSkipAliases(t *testing.T) {
	g := analyzetest.Graph(t, analyzetest.Source{Path: analyzetest.BasicPath, Code: analyzetest.Basic + `
type TokenAlias = TokenAlpha

type BetaAlias = TokenBeta
`})

	cases := g.Cases(basicType(t, g, "Token"))
	require.Len(t, cases, 2)
	assert.Equal(t, "TokenAlpha", cases[0].Type.ID.Name)
	assert.Equal(t, "TokenBeta", cases[1].Type.ID.Name)
}

func TestFuncInfo_IsConversion(t *testing.T) {
	g := analyzetest.BasicGraph(t)
	label := basicType(t, g, "Label")
	foo := basicType(t, g, "Foo")

	fn := g.GetFunc(analyze.TypeID{PkgPath: analyzetest.BasicPath, Name: "FooFromLabel"})
	require.NotNil(t, fn)
	assert.True(t, fn.IsConversion(label.GoType, foo.GoType))
	assert.False(t, fn.IsConversion(foo.GoType, label.GoType))

	describe := g.GetFunc(analyze.TypeID{PkgPath: analyzetest.BasicPath, Name: "Describe"})
	require.NotNil(t, describe)
	assert.False(t, describe.IsConversion(foo.GoType, types.Typ[types.String]))
}

func TestTypeGraph_Describe(t *testing.T) {
	g := analyzetest.BasicGraph(t)

	assert.Equal(t, "basic.Foo: struct newtype, field Value string", g.Describe(basicType(t, g, "Foo")))
	assert.Equal(t, "basic.Label: defined newtype of string", g.Describe(basicType(t, g, "Label")))
	assert.Equal(t, "basic.Token: union, cases [Alpha, Beta (*TokenBeta)]", g.Describe(basicType(t, g, "Token")))
	assert.Equal(t, "basic.Pair: other", g.Describe(basicType(t, g, "Pair")))

	var names []string
	for _, info := range g.Newtypes(analyzetest.BasicPath) {
		names = append(names, info.ID.Name)
	}

	assert.Equal(t, []string{"Bar", "Baz", "Count", "Foo", "Label", "Opaque", "Text", "Token", "TokenAlpha", "TokenBeta", "hidden"}, names)
}

func TestTypeGraph_ImportPathForDir_Module(t *testing.T) {
	g := analyzetest.BasicGraph(t)

	root, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	g.Module = &analyze.ModuleInfo{Path: "example.com/shapes", Dir: root}

	path, ok := g.ImportPathForDir(filepath.Join(root, "gen", "conv"))
	require.True(t, ok)
	assert.Equal(t, "example.com/shapes/gen/conv", path)

	path, ok = g.ImportPathForDir(root)
	require.True(t, ok)
	assert.Equal(t, "example.com/shapes", path)

	_, ok = g.ImportPathForDir(filepath.Dir(root))
	assert.False(t, ok)
}

func TestTypeName(t *testing.T) {
	g := analyzetest.BasicGraph(t)
	foo := basicType(t, g, "Foo").GoType

	tests := []struct {
		typ      types.Type
		expected string
	}{
		{types.Typ[types.String], "String"},
		{types.Typ[types.Int64], "Int64"},
		{types.NewSlice(types.Universe.Lookup("byte").Type()), "Bytes"},
		{types.NewSlice(types.Universe.Lookup("rune").Type()), "Runes"},
		{types.NewSlice(foo), "FooSlice"},
		{types.NewPointer(foo), "FooPtr"},
		{types.NewArray(types.Typ[types.Int], 4), "IntArray"},
		{types.NewMap(types.Typ[types.String], types.Typ[types.Int]), "StringToIntMap"},
		{types.NewInterfaceType(nil, nil), "Any"},
		{foo, "Foo"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, analyze.TypeName(tt.typ))
		})
	}
}

func TestTypeString(t *testing.T) {
	g := analyzetest.BasicGraph(t)
	foo := basicType(t, g, "Foo").GoType

	assert.Equal(t, "[]basic.Foo", analyze.TypeString(types.NewSlice(foo)))
	assert.Equal(t, "map[string]*basic.Foo", analyze.TypeString(types.NewMap(types.Typ[types.String], types.NewPointer(foo))))
	assert.Equal(t, "<nil>", analyze.TypeString(nil))
}

func TestTypeID(t *testing.T) {
	id := analyze.TypeID{PkgPath: "newtype-generator/examples/basic", Name: "Foo"}
	assert.Equal(t, "newtype-generator/examples/basic.Foo", id.String())
	assert.Equal(t, "basic.Foo", id.Short())
	assert.Equal(t, "int", analyze.TypeID{Name: "int"}.String())
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "defined", analyze.ShapeDefined.String())
	assert.Equal(t, "struct", analyze.ShapeStruct.String())
	assert.Equal(t, "union", analyze.ShapeUnion.String())
	assert.Equal(t, "other", analyze.ShapeOther.String())
	assert.Equal(t, "unknown", analyze.Shape(9).String())
	assert.True(t, analyze.ShapeDefined.IsNewtype())
	assert.False(t, analyze.ShapeUnion.IsNewtype())
}
