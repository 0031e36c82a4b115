// Package main provides the CLI entrypoint for newtype-generator.
//
// newtype-generator reads a YAML rule file, loads the Go packages declaring
// newtypes, and generates conversion functions into those newtypes:
//   - direct conversions from listed source types (wrap)
//   - one generic conversion per type set (wrap_any)
//   - chained conversions composing existing ones (chain)
package main

import (
	"os"
)

func main() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
