// Package plan resolves a validated rule file into the ordered list of
// conversion functions consumed by code generation.
//
// Resolution pipeline:
//  1. Validate the rule file against the type graph
//  2. Register every conversion by its (source, target) pair:
//     external functions, direct wraps, blanket wraps, chains
//  3. Resolve function bodies: the held-value step of each direct wrap
//     and every link of each chain
//  4. Order generated functions so callees come first
//  5. Emit diagnostics (duplicates, missing paths, cycles, accessibility)
package plan
