// Package match provides identifier normalization and edit-distance
// scoring used to suggest type names for misspelled rule entries and to
// derive file names from type names.
//
// Key functions:
//   - NormalizeIdent: case- and separator-insensitive form of an identifier
//   - Levenshtein: edit distance between strings
//   - Suggest: ranks known names closest to an unknown one
//   - SnakeCase: lower snake case of a Go identifier
package match
