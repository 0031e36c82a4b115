// Package analyze provides package loading and newtype extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to build an
// in-memory graph of the named types and package-level functions that
// conversion rules refer to.
//
// Key types:
//   - TypeID: package import path + name
//   - TypeInfo: a named type and its newtype shape (defined/struct/union)
//   - FuncInfo: a package-level function usable as a hand-written conversion
//   - TypeGraph: everything loaded, plus the module the packages belong to
package analyze
