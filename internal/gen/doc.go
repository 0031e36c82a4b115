// Package gen provides deterministic Go code generation for conversion functions.
//
// Files are built with github.com/dave/jennifer, which manages imports and
// formats the output. Types of the output package are written unqualified.
//
// Codegen patterns:
//   - Direct wrap: construct the newtype around the converted held value
//   - Union case: construct the case type, by address when only *Case implements the union
//   - Blanket wrap: generic function over a ~T type set
//   - Chain: nested calls of every link, innermost first
package gen
