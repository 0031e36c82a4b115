package analyze

import (
	"path"
	"path/filepath"
	"strings"
)

// ImportPathForDir returns the import path of the package living in dir.
// A loaded package with that directory wins; otherwise the path is derived
// from the module root. The second result is false when neither applies.
func (g *TypeGraph) ImportPathForDir(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for _, pkg := range g.Packages {
		if pkg.Dir != "" && filepath.Clean(pkg.Dir) == abs {
			return pkg.Path, true
		}
	}

	if g.Module == nil || g.Module.Dir == "" {
		return "", false
	}

	rel, err := filepath.Rel(g.Module.Dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	if rel == "." {
		return g.Module.Path, true
	}

	return path.Join(g.Module.Path, filepath.ToSlash(rel)), true
}

func dirOf(file string) string {
	return filepath.Dir(file)
}
