// Package rules provides the YAML rule file schema, parsing, type
// expression resolution and structural validation for newtype conversions.
//
// The rule file is the authoritative, human-written list of conversions to
// generate; regeneration from the same file and packages is deterministic.
//
// # Schema Overview
//
//	version: "1"
//	packages: [./examples/basic]
//	output:
//	  dir: ./examples/basic/conv
//	  package: conv
//	# Hand-written conversions the generator may call.
//	conversions:
//	  - from: basic.Label
//	    to: basic.Foo
//	    func: basic.FooFromLabel
//	# One function per source: FooFromString, FooFromBytes.
//	wrap:
//	  - wrapper: Foo
//	    source: [string, "[]byte"]
//	  - wrapper: Token
//	    case: Alpha
//	    source: string
//	# One generic function: LabelFromAny[T ~string | ~[]byte].
//	wrap_any:
//	  - wrapper: Label
//	    held: string
//	    also: ["[]byte"]
//	# One composed function: BazFromString.
//	chain:
//	  - [string, Foo, Bar, Baz]
//	  - types: [Label, Foo, Bar]
//	    func: BarFromLabel
//
// # Type Expressions
//
// Types are written as Go type expressions:
//   - Predeclared: "string", "[]byte", "map[string]int"
//   - Name only: "Foo" (must be unique across loaded packages)
//   - Short qualified: "basic.Foo"
//   - Full import path: "newtype-generator/examples/basic.Foo"
//   - Composites of the above: "*basic.Foo", "[]basic.Label"
//
// # Wrappers
//
// A wrapper is a named type holding exactly one value: a defined type
// ("type Label string") or a single-field struct. A union is an interface
// type whose cases are newtypes implementing it; "case: Alpha" of union
// Token selects TokenAlpha.
package rules
