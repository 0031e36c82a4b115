package rules

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"go/types"
	"regexp"
	"sort"
	"strings"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/common"
	"newtype-generator/internal/match"
)

// maxSuggestions bounds "did you mean" lists.
const maxSuggestions = 3

// fullPathRef matches "example.com/x/basic.Foo" style references, which
// are not valid Go expressions and are replaced before parsing.
var fullPathRef = regexp.MustCompile(`((?:[\w\-.~]+/)+[\w\-.~]+)\.([A-Za-z_]\w*)`)

// pathPlaceholder prefixes identifiers standing in for full import paths.
const pathPlaceholder = "__path"

// ResolveError reports a reference that could not be resolved.
type ResolveError struct {
	Ref         string
	Msg         string
	Suggestions []string
}

// Error implements error.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("%q: %s", e.Ref, e.Msg)
}

// ResolveType resolves a Go type expression against the type graph.
func ResolveType(expr string, graph *analyze.TypeGraph) (types.Type, error) {
	if graph == nil {
		return nil, &ResolveError{Ref: expr, Msg: "type graph is nil"}
	}

	src, paths := replaceFullPaths(strings.TrimSpace(expr))
	if src == "" {
		return nil, &ResolveError{Ref: expr, Msg: "empty type"}
	}

	node, err := parser.ParseExpr(src)
	if err != nil {
		return nil, &ResolveError{Ref: expr, Msg: "not a type expression: " + err.Error()}
	}

	r := &exprResolver{graph: graph, paths: paths, ref: expr}

	return r.resolve(node)
}

// ResolveNamed resolves a reference to a named type in the graph.
func ResolveNamed(ref string, graph *analyze.TypeGraph) (*analyze.TypeInfo, error) {
	t, err := ResolveType(ref, graph)
	if err != nil {
		return nil, err
	}

	info := graph.Lookup(t)
	if info == nil {
		return nil, &ResolveError{Ref: ref, Msg: "not a named type of the loaded packages"}
	}

	return info, nil
}

// ResolveFunc resolves a function reference ("basic.FooFromLabel", a full
// import path form, or a bare unique name) against the type graph.
func ResolveFunc(ref string, graph *analyze.TypeGraph) (*analyze.FuncInfo, error) {
	if graph == nil {
		return nil, &ResolveError{Ref: ref, Msg: "type graph is nil"}
	}

	pkg, name := splitQualified(strings.TrimSpace(ref))
	if !token.IsIdentifier(name) {
		return nil, &ResolveError{Ref: ref, Msg: "not a function reference"}
	}

	var (
		found      []*analyze.FuncInfo
		candidates []string
	)

	for id, fn := range graph.Funcs {
		candidates = append(candidates, id.Short())

		if id.Name == name && (pkg == "" || pkgMatches(graph, id.PkgPath, pkg)) {
			found = append(found, fn)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		sort.Strings(candidates)

		return nil, &ResolveError{
			Ref:         ref,
			Msg:         "function not found",
			Suggestions: match.Suggest(ref, candidates, maxSuggestions, match.DefaultSuggestScore),
		}
	default:
		return nil, &ResolveError{Ref: ref, Msg: "ambiguous function, qualify it with its package"}
	}
}

type exprResolver struct {
	graph *analyze.TypeGraph
	paths map[string]string
	ref   string
}

func (r *exprResolver) resolve(node ast.Expr) (types.Type, error) {
	switch n := node.(type) {
	case *ast.Ident:
		return r.ident(n.Name)

	case *ast.SelectorExpr:
		pkg, ok := n.X.(*ast.Ident)
		if !ok {
			return nil, r.fail("unsupported selector")
		}

		path := pkg.Name
		if full, ok := r.paths[path]; ok {
			path = full
		}

		return r.qualified(path, n.Sel.Name)

	case *ast.StarExpr:
		elem, err := r.resolve(n.X)
		if err != nil {
			return nil, err
		}

		return types.NewPointer(elem), nil

	case *ast.ParenExpr:
		return r.resolve(n.X)

	case *ast.ArrayType:
		elem, err := r.resolve(n.Elt)
		if err != nil {
			return nil, err
		}

		if n.Len == nil {
			return types.NewSlice(elem), nil
		}

		lit, ok := n.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return nil, r.fail("array length must be an integer literal")
		}

		size, ok := constant.Int64Val(constant.MakeFromLiteral(lit.Value, lit.Kind, 0))
		if !ok || size < 0 {
			return nil, r.fail("invalid array length " + lit.Value)
		}

		return types.NewArray(elem, size), nil

	case *ast.MapType:
		key, err := r.resolve(n.Key)
		if err != nil {
			return nil, err
		}

		val, err := r.resolve(n.Value)
		if err != nil {
			return nil, err
		}

		return types.NewMap(key, val), nil

	case *ast.InterfaceType:
		if n.Methods != nil && len(n.Methods.List) > 0 {
			return nil, r.fail("only the empty interface is supported inline")
		}

		return types.NewInterfaceType(nil, nil).Complete(), nil

	default:
		return nil, r.fail(fmt.Sprintf("unsupported type expression %T", node))
	}
}

func (r *exprResolver) ident(name string) (types.Type, error) {
	if obj, ok := types.Universe.Lookup(name).(*types.TypeName); ok {
		return obj.Type(), nil
	}

	var found []*analyze.TypeInfo

	for id, info := range r.graph.Types {
		if id.Name == name {
			found = append(found, info)
		}
	}

	switch len(found) {
	case 1:
		return found[0].GoType, nil
	case 0:
		return nil, r.notFound(name)
	default:
		var ids []string
		for _, f := range found {
			ids = append(ids, f.ID.String())
		}

		sort.Strings(ids)

		return nil, &ResolveError{
			Ref:         r.ref,
			Msg:         "ambiguous type name, qualify it with its package",
			Suggestions: ids,
		}
	}
}

func (r *exprResolver) qualified(pkg, name string) (types.Type, error) {
	if info := r.graph.GetType(analyze.TypeID{PkgPath: pkg, Name: name}); info != nil {
		return info.GoType, nil
	}

	var found []*analyze.TypeInfo

	for id, info := range r.graph.Types {
		if id.Name == name && pkgMatches(r.graph, id.PkgPath, pkg) {
			found = append(found, info)
		}
	}

	switch len(found) {
	case 1:
		return found[0].GoType, nil
	case 0:
		return nil, r.notFound(pkg + "." + name)
	default:
		return nil, &ResolveError{Ref: r.ref, Msg: "ambiguous package " + pkg + ", use the full import path"}
	}
}

func (r *exprResolver) notFound(name string) error {
	candidates := make([]string, 0, len(r.graph.Types))
	for id := range r.graph.Types {
		candidates = append(candidates, id.Short())
	}

	sort.Strings(candidates)

	return &ResolveError{
		Ref:         r.ref,
		Msg:         "type " + name + " not found",
		Suggestions: match.Suggest(name, candidates, maxSuggestions, match.DefaultSuggestScore),
	}
}

func (r *exprResolver) fail(msg string) error {
	return &ResolveError{Ref: r.ref, Msg: msg}
}

// pkgMatches reports whether the loaded package at path is referred to by
// ref: its full path, a path suffix, or its package name.
func pkgMatches(graph *analyze.TypeGraph, path, ref string) bool {
	if path == ref || strings.HasSuffix(path, "/"+ref) || common.PkgAlias(path) == ref {
		return true
	}

	if info := graph.Packages[path]; info != nil && info.Name == ref {
		return true
	}

	return false
}

func replaceFullPaths(expr string) (string, map[string]string) {
	paths := map[string]string{}

	out := fullPathRef.ReplaceAllStringFunc(expr, func(m string) string {
		sub := fullPathRef.FindStringSubmatch(m)
		key := fmt.Sprintf("%s%d", pathPlaceholder, len(paths))
		paths[key] = sub[1]

		return key + "." + sub[2]
	})

	return out, paths
}

// splitQualified splits "pkg.Name" or "example.com/x/pkg.Name" into its
// package reference and name.
func splitQualified(ref string) (string, string) {
	i := strings.LastIndex(ref, ".")
	if i < 0 {
		return "", ref
	}

	return ref[:i], ref[i+1:]
}
