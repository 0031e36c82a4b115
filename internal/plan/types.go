package plan

import (
	"go/types"
	"strings"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/rules"
)

// Plan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// Conversions are the generated functions, callees before callers.
	Conversions []*Conversion
	// External are the hand-written conversions registered by the rule file.
	External []*Conversion
	// OutputPkgPath is the import path generated code is written to.
	OutputPkgPath string
	// TypeGraph holds all analyzed types and packages.
	TypeGraph *analyze.TypeGraph
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Conversion is one registered conversion function.
type Conversion struct {
	Kind Kind
	// Rule is the label of the rule declaring it, e.g. "wrap[1]".
	Rule string
	// Name is the function name.
	Name string
	// PkgPath is the package declaring the function.
	PkgPath string
	// From is the source type. Nil for blankets, whose source is a type parameter.
	From types.Type
	// To is the result type.
	To types.Type
	// Description is copied into the doc comment of external entries.
	Description string

	// Wrapper is the newtype constructed by direct and blanket conversions.
	Wrapper *rules.Wrapper
	// Held is the step turning the source into the held value (direct only).
	Held *Link
	// Terms are the underlying types of the blanket constraint.
	Terms []types.Type

	// Path lists every type of a chain, first to last.
	Path []types.Type
	// Links are the conversions between adjacent chain types.
	Links []Link

	seq int
}

// Link converts a value of From to To, either by calling Via or, when Via
// is nil, with a Go conversion To(v).
type Link struct {
	From types.Type
	To   types.Type
	Via  *Conversion
}

// Native reports whether the link is a plain Go conversion.
func (l Link) Native() bool {
	return l.Via == nil
}

// Covers reports whether a blanket conversion accepts values of t.
func (c *Conversion) Covers(t types.Type) bool {
	if c.Kind != KindBlanket || t == nil {
		return false
	}

	u := t.Underlying()
	for _, term := range c.Terms {
		if types.Identical(u, term) {
			return true
		}
	}

	return false
}

// Dependencies returns the generated conversions c calls.
func (c *Conversion) Dependencies() []*Conversion {
	var deps []*Conversion

	add := func(l *Link) {
		if l != nil && l.Via != nil && l.Via.Kind.Generated() {
			deps = append(deps, l.Via)
		}
	}

	add(c.Held)

	for i := range c.Links {
		add(&c.Links[i])
	}

	return deps
}

// Source renders the accepted source, "string" or "~string | ~[]byte".
func (c *Conversion) Source() string {
	if c.Kind != KindBlanket {
		return analyze.TypeString(c.From)
	}

	terms := make([]string, len(c.Terms))
	for i, t := range c.Terms {
		terms[i] = "~" + analyze.TypeString(t)
	}

	return strings.Join(terms, " | ")
}

// Pair renders "source -> target".
func (c *Conversion) Pair() string {
	return c.Source() + " -> " + analyze.TypeString(c.To)
}

// Qualified returns "pkg.Name" for display.
func (c *Conversion) Qualified() string {
	return analyze.TypeID{PkgPath: c.PkgPath, Name: c.Name}.Short()
}
