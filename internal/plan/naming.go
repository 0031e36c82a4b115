package plan

import (
	"go/types"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/rules"
)

// directName returns the default name of a direct wrap function, e.g. FooFromBytes.
func directName(w *rules.Wrapper, from types.Type) string {
	return w.Target.ID.Name + "From" + analyze.TypeName(from)
}

// blanketName returns the default name of a blanket wrap function, e.g. LabelFromAny.
func blanketName(w *rules.Wrapper) string {
	return w.Target.ID.Name + "FromAny"
}

// chainName returns the default name of a chain function, e.g. BazFromString.
func chainName(first, last types.Type) string {
	return analyze.TypeName(last) + "From" + analyze.TypeName(first)
}
