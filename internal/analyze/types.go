package analyze

import (
	"go/types"

	"newtype-generator/internal/common"
)

// TypeID uniquely identifies a named type or function by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "newtype-generator/examples/basic"
	Name    string // e.g., "Foo"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns "alias.Name", using the last element of the package path.
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// Shape describes how a named type holds its value.
type Shape int

const (
	ShapeOther   Shape = iota // not usable as a wrapper
	ShapeDefined              // type Label string
	ShapeStruct               // type Foo struct{ Value string }
	ShapeUnion                // type Token interface{ isToken() }
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeOther:
		return "other"
	case ShapeDefined:
		return "defined"
	case ShapeStruct:
		return "struct"
	case ShapeUnion:
		return "union"
	default:
		return common.UnknownStr
	}
}

// IsNewtype reports whether values of the shape wrap exactly one held value.
func (s Shape) IsNewtype() bool {
	return s == ShapeDefined || s == ShapeStruct
}

// TypeInfo describes a named type in the graph.
type TypeInfo struct {
	ID     TypeID     // Unique identifier
	Shape  Shape      // How the type holds its value
	GoType types.Type // The *types.Named (or *types.Alias) itself
	Held   types.Type // For newtypes, the type of the held value
	Field  *FieldInfo // For struct newtypes, the single field
}

// Exported reports whether the type name is exported.
func (t *TypeInfo) Exported() bool {
	return common.Exported(t.ID.Name)
}

// FieldInfo describes the single field of a struct newtype.
type FieldInfo struct {
	Name     string     // Go field name
	Type     types.Type // Field type
	Exported bool       // Whether the field is exported
	Embedded bool       // Whether the field is embedded (anonymous)
}

// FuncInfo describes a package-level function.
type FuncInfo struct {
	ID        TypeID
	Signature *types.Signature
}

// IsConversion reports whether the function has the shape func(from) to.
func (f *FuncInfo) IsConversion(from, to types.Type) bool {
	sig := f.Signature
	if sig == nil || sig.TypeParams().Len() > 0 || sig.Variadic() {
		return false
	}

	if sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return false
	}

	return types.Identical(sig.Params().At(0).Type(), from) &&
		types.Identical(sig.Results().At(0).Type(), to)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Funcs maps TypeID to FuncInfo for all package-level functions.
	Funcs map[TypeID]*FuncInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Module is the module of the first loaded package that has one.
	Module *ModuleInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Funcs:    make(map[TypeID]*FuncInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// GetFunc returns the FuncInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetFunc(id TypeID) *FuncInfo {
	return g.Funcs[id]
}

// Lookup returns the TypeInfo describing t when t is a named type in the graph.
func (g *TypeGraph) Lookup(t types.Type) *TypeInfo {
	id, ok := IDOf(t)
	if !ok {
		return nil
	}

	return g.Types[id]
}

// IDOf returns the TypeID of a named or alias type.
func IDOf(t types.Type) (TypeID, bool) {
	var obj *types.TypeName

	switch tt := t.(type) {
	case *types.Named:
		obj = tt.Obj()
	case *types.Alias:
		obj = tt.Obj()
	default:
		return TypeID{}, false
	}

	if obj.Pkg() == nil {
		return TypeID{Name: obj.Name()}, true
	}

	return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}, true
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string         // Import path
	Name  string         // Package name
	Dir   string         // Directory holding the package sources
	Types []TypeID       // Named types defined in this package
	Pkg   *types.Package // Type-checked package
}

// ModuleInfo describes the module owning the loaded packages.
type ModuleInfo struct {
	Path string // Module path
	Dir  string // Module root directory
}
