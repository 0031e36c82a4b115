package common

import "path"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// Exported reports whether name starts with an upper-case letter.
func Exported(name string) bool {
	if name == "" {
		return false
	}

	c := name[0]

	return c >= 'A' && c <= 'Z'
}
