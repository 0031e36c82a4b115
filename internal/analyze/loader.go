package analyze

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the directory package patterns are resolved from. Empty means
	// the current working directory.
	Dir string

	graph *TypeGraph
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/basic").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		dir := ""
		if len(pkg.GoFiles) > 0 {
			dir = dirOf(pkg.GoFiles[0])
		}

		if a.graph.Module == nil && pkg.Module != nil {
			a.graph.Module = &ModuleInfo{Path: pkg.Module.Path, Dir: pkg.Module.Dir}
		}

		if err := a.AddPackage(pkg.Types, dir); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// AddPackage records the named types and functions of a type-checked
// package. LoadPackages calls it for every loaded package; tests call it
// directly with packages built in memory.
func (a *Analyzer) AddPackage(pkg *types.Package, dir string) error {
	if pkg == nil {
		return fmt.Errorf("nil package")
	}

	pkgInfo := &PackageInfo{
		Path: pkg.Path(),
		Name: pkg.Name(),
		Dir:  dir,
		Pkg:  pkg,
	}

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		id := TypeID{PkgPath: pkg.Path(), Name: name}

		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			info := classify(obj.Type())
			info.ID = id
			a.graph.Types[id] = info
			pkgInfo.Types = append(pkgInfo.Types, id)

		case *types.Func:
			sig, _ := obj.Type().(*types.Signature)
			a.graph.Funcs[id] = &FuncInfo{ID: id, Signature: sig}
		}
	}

	a.graph.Packages[pkg.Path()] = pkgInfo

	return nil
}

// classify determines the newtype shape of a named type.
func classify(t types.Type) *TypeInfo {
	info := &TypeInfo{GoType: t}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		// Aliases of unnamed types and generic types are never wrappers.
		info.Shape = ShapeOther
		return info
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		if ut.NumFields() != 1 {
			info.Shape = ShapeOther
			return info
		}

		f := ut.Field(0)
		info.Shape = ShapeStruct
		info.Held = f.Type()
		info.Field = &FieldInfo{
			Name:     f.Name(),
			Type:     f.Type(),
			Exported: f.Exported(),
			Embedded: f.Embedded(),
		}

	case *types.Interface:
		info.Shape = ShapeUnion

	case *types.Signature:
		// Function types convert only between identical signatures.
		info.Shape = ShapeOther

	default:
		info.Shape = ShapeDefined
		info.Held = ut
	}

	return info
}
