package rules

import "fmt"

// CurrentVersion is the only rule file version understood.
const CurrentVersion = "1"

// RuleFile represents the root of a YAML rule file.
type RuleFile struct {
	// Version of the rule schema.
	Version string `yaml:"version,omitempty"`

	// Packages lists go/packages patterns to load before resolving types.
	Packages StringOrArray `yaml:"packages,omitempty"`

	// Output describes where and how generated code is written.
	Output Output `yaml:"output,omitempty"`

	// Conversions registers hand-written conversion functions.
	Conversions []ConversionDef `yaml:"conversions,omitempty"`

	// Wraps are direct-wrap rules: one function per source type.
	Wraps []WrapRule `yaml:"wrap,omitempty"`

	// WrapAny are blanket-wrap rules: one generic function per rule.
	WrapAny []WrapAnyRule `yaml:"wrap_any,omitempty"`

	// Chains are chained-conversion rules.
	Chains []ChainRule `yaml:"chain,omitempty"`
}

// Output describes the generated package.
type Output struct {
	// Dir is the directory generated files are written to.
	Dir string `yaml:"dir,omitempty"`
	// Package is the package clause of generated files.
	// Defaults to the last element of Dir.
	Package string `yaml:"package,omitempty"`
	// Path is the import path of Dir. Derived from the loaded packages or
	// module when empty.
	Path string `yaml:"path,omitempty"`
	// File puts every function into a single file of that name.
	// When empty, one file is written per target type.
	File string `yaml:"file,omitempty"`
}

// ConversionDef registers an existing function func(From) To.
type ConversionDef struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	// Func is the function reference, e.g. "basic.FooFromLabel".
	Func        string `yaml:"func"`
	Description string `yaml:"description,omitempty"`
}

// WrapRule generates Wrapper <- Source for every listed source.
type WrapRule struct {
	// Wrapper is the newtype, or the union when Case is set.
	Wrapper string `yaml:"wrapper"`
	// Case selects the union case holding the value.
	Case string `yaml:"case,omitempty"`
	// Source lists the types converted from.
	Source StringOrArray `yaml:"source"`
	// Func overrides the generated function name (single source only).
	Func string `yaml:"func,omitempty"`
}

// WrapAnyRule generates one generic Wrapper <- T for every T in a type set.
type WrapAnyRule struct {
	Wrapper string `yaml:"wrapper"`
	Case    string `yaml:"case,omitempty"`
	// Held must match the wrapper's held type. Defaults to it.
	Held string `yaml:"held,omitempty"`
	// Also adds further constraint terms (by their underlying type).
	Also StringOrArray `yaml:"also,omitempty"`
	Func string        `yaml:"func,omitempty"`
}

// ChainRule generates Types[last] <- Types[0] through every type in between.
type ChainRule struct {
	Types StringOrArray `yaml:"types"`
	Func  string        `yaml:"func,omitempty"`
}

// StringOrArray is a list of strings that accepts a single scalar in YAML.
type StringOrArray []string

// Rule kinds as used in rule labels and diagnostics.
const (
	KindConversion = "conversions"
	KindWrap       = "wrap"
	KindWrapAny    = "wrap_any"
	KindChain      = "chain"
)

// Label names the i-th rule of a kind, e.g. "wrap[2]".
func Label(kind string, i int) string {
	return fmt.Sprintf("%s[%d]", kind, i)
}

// PackageName returns the package clause for generated files.
func (o Output) PackageName() string {
	if o.Package != "" {
		return o.Package
	}

	return dirBase(o.Dir)
}
