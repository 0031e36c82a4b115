package analyze

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders a one-line summary of a named type, as printed by the
// analyze command.
func (g *TypeGraph) Describe(t *TypeInfo) string {
	switch t.Shape {
	case ShapeDefined:
		return fmt.Sprintf("%s: defined newtype of %s", t.ID.Short(), TypeString(t.Held))

	case ShapeStruct:
		return fmt.Sprintf("%s: struct newtype, field %s %s", t.ID.Short(), t.Field.Name, TypeString(t.Held))

	case ShapeUnion:
		var cases []string

		for _, c := range g.Cases(t) {
			name := c.Tag
			if c.Pointer {
				name += " (*" + c.Type.ID.Name + ")"
			}

			cases = append(cases, name)
		}

		return fmt.Sprintf("%s: union, cases [%s]", t.ID.Short(), strings.Join(cases, ", "))

	default:
		return fmt.Sprintf("%s: %s", t.ID.Short(), t.Shape)
	}
}

// Newtypes returns every wrapper-capable type of the package at pkgPath,
// sorted by name.
func (g *TypeGraph) Newtypes(pkgPath string) []*TypeInfo {
	pkg := g.Packages[pkgPath]
	if pkg == nil {
		return nil
	}

	var out []*TypeInfo

	for _, id := range pkg.Types {
		if t := g.Types[id]; t != nil && t.Shape != ShapeOther {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.Name < out[j].ID.Name
	})

	return out
}

// PackagePaths returns the import paths of all loaded packages, sorted.
func (g *TypeGraph) PackagePaths() []string {
	paths := make([]string, 0, len(g.Packages))
	for p := range g.Packages {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}
