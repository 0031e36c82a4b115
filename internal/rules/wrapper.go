package rules

import (
	"go/types"

	"newtype-generator/internal/analyze"
)

// Wrapper is a resolved wrapper reference: the type conversions produce
// and the newtype actually constructed around the held value.
type Wrapper struct {
	// Target is the type generated functions return: the newtype itself,
	// or the union interface for a case.
	Target *analyze.TypeInfo
	// Value is the newtype constructed: Target, or the union case type.
	Value *analyze.TypeInfo
	// Case is the union case tag, empty for plain newtypes.
	Case string
	// Pointer is true when the case is constructed as &Case{...}.
	Pointer bool
}

// Held returns the type of the value the wrapper holds.
func (w Wrapper) Held() types.Type {
	return w.Value.Held
}

// Name returns a short display name, "basic.Foo" or "basic.Token.Alpha".
func (w Wrapper) Name() string {
	if w.Case == "" {
		return w.Target.ID.Short()
	}

	return w.Target.ID.Short() + "." + w.Case
}

// ResolveWrapper resolves a wrapper reference and optional union case.
// The error codes returned match the diagnostics reported by Validate.
func ResolveWrapper(ref, caseTag string, graph *analyze.TypeGraph) (Wrapper, string, error) {
	target, err := ResolveNamed(ref, graph)
	if err != nil {
		return Wrapper{}, CodeTypeNotFound, err
	}

	if caseTag == "" {
		switch {
		case target.Shape == analyze.ShapeUnion:
			return Wrapper{}, CodeCaseRequired, &ResolveError{Ref: ref, Msg: "union wrapper needs a case"}
		case !target.Shape.IsNewtype():
			return Wrapper{}, CodeNotANewtype, &ResolveError{
				Ref: ref,
				Msg: "not a newtype (need a defined type or a single-field struct)",
			}
		}

		return Wrapper{Target: target, Value: target}, "", nil
	}

	if target.Shape != analyze.ShapeUnion {
		return Wrapper{}, CodeCaseOnNonUnion, &ResolveError{Ref: ref, Msg: "case " + caseTag + " given but the wrapper is not a union interface"}
	}

	c, err := graph.Case(target, caseTag)
	if err != nil {
		return Wrapper{}, CodeCaseNotFound, &ResolveError{Ref: ref, Msg: err.Error()}
	}

	return Wrapper{Target: target, Value: c.Type, Case: c.Tag, Pointer: c.Pointer}, "", nil
}
