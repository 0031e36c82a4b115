package analyze

import (
	"fmt"
	"go/types"
	"sort"
)

// UnionCase is a concrete newtype implementing a union interface.
type UnionCase struct {
	// Tag is the case name relative to the union (TokenAlpha of Token -> Alpha).
	Tag string
	// Type is the case newtype.
	Type *TypeInfo
	// Pointer is true when only *Type implements the union.
	Pointer bool
}

// Cases returns every newtype in the union's package that implements the
// union, sorted by name.
func (g *TypeGraph) Cases(union *TypeInfo) []UnionCase {
	if union == nil || union.Shape != ShapeUnion {
		return nil
	}

	iface, ok := union.GoType.Underlying().(*types.Interface)
	if !ok {
		return nil
	}

	pkg := g.Packages[union.ID.PkgPath]
	if pkg == nil {
		return nil
	}

	var cases []UnionCase

	for _, id := range pkg.Types {
		info := g.Types[id]
		if info == nil || !info.Shape.IsNewtype() || isAlias(pkg, info) {
			continue
		}

		c := UnionCase{Tag: caseTag(union.ID.Name, id.Name), Type: info}

		switch {
		case types.Implements(info.GoType, iface):
		case types.Implements(types.NewPointer(info.GoType), iface):
			c.Pointer = true
		default:
			continue
		}

		cases = append(cases, c)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Type.ID.Name < cases[j].Type.ID.Name
	})

	return cases
}

// isAlias reports whether the type is declared as an alias of another one.
func isAlias(pkg *PackageInfo, info *TypeInfo) bool {
	if _, ok := info.GoType.(*types.Alias); ok {
		return true
	}

	if pkg.Pkg == nil {
		return false
	}

	obj, ok := pkg.Pkg.Scope().Lookup(info.ID.Name).(*types.TypeName)

	return ok && obj.IsAlias()
}

// Case resolves the case tag of a union. The tag matches either the case
// type's name with the union name prefixed (Alpha -> TokenAlpha) or the
// case type's own name.
func (g *TypeGraph) Case(union *TypeInfo, tag string) (UnionCase, error) {
	if union == nil || union.Shape != ShapeUnion {
		return UnionCase{}, fmt.Errorf("%s is not a union interface", describe(union))
	}

	cases := g.Cases(union)

	for _, want := range []string{union.ID.Name + tag, tag} {
		for _, c := range cases {
			if c.Type.ID.Name == want {
				return c, nil
			}
		}
	}

	var tags []string
	for _, c := range cases {
		tags = append(tags, c.Tag)
	}

	return UnionCase{}, fmt.Errorf("union %s has no case %q (cases: %v)", union.ID.Short(), tag, tags)
}

func caseTag(union, name string) string {
	if len(name) > len(union) && name[:len(union)] == union {
		return name[len(union):]
	}

	return name
}

func describe(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	return t.ID.Short()
}
