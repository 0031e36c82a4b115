package plan

import (
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// registry indexes conversions by their (source, target) pair. Types are
// compared with types.Identical.
type registry struct {
	// pairs maps a target type to a *typeutil.Map of source -> *Conversion.
	pairs typeutil.Map
	// blankets maps a target type to the []*Conversion registered on it.
	blankets typeutil.Map
	// funcs maps "pkgpath.Name" to the conversion declaring it.
	funcs map[string]*Conversion
	// seq numbers conversions in registration order.
	seq int
}

func newRegistry() *registry {
	return &registry{funcs: make(map[string]*Conversion)}
}

// lookup returns the conversion registered for exactly (from, to).
func (r *registry) lookup(from, to types.Type) *Conversion {
	sources, _ := r.pairs.At(to).(*typeutil.Map)
	if sources == nil {
		return nil
	}

	c, _ := sources.At(from).(*Conversion)

	return c
}

// blanketFor returns the blanket conversion to `to` accepting from.
func (r *registry) blanketFor(from, to types.Type) *Conversion {
	list, _ := r.blankets.At(to).([]*Conversion)
	for _, c := range list {
		if c.Covers(from) {
			return c
		}
	}

	return nil
}

// conflict returns the registered conversion c would duplicate, if any.
func (r *registry) conflict(c *Conversion) *Conversion {
	if c.Kind != KindBlanket {
		if prev := r.lookup(c.From, c.To); prev != nil {
			return prev
		}

		return r.blanketFor(c.From, c.To)
	}

	list, _ := r.blankets.At(c.To).([]*Conversion)
	for _, prev := range list {
		for _, term := range c.Terms {
			if prev.Covers(term) {
				return prev
			}
		}
	}

	sources, _ := r.pairs.At(c.To).(*typeutil.Map)
	if sources == nil {
		return nil
	}

	var found *Conversion

	sources.Iterate(func(from types.Type, v any) {
		prev, _ := v.(*Conversion)
		if c.Covers(from) && (found == nil || prev.seq < found.seq) {
			found = prev
		}
	})

	return found
}

// add registers c. It must not conflict with a registered conversion.
func (r *registry) add(c *Conversion) {
	r.seq++
	c.seq = r.seq
	r.funcs[funcKey(c.PkgPath, c.Name)] = c

	if c.Kind == KindBlanket {
		list, _ := r.blankets.At(c.To).([]*Conversion)
		r.blankets.Set(c.To, append(list, c))

		return
	}

	sources, _ := r.pairs.At(c.To).(*typeutil.Map)
	if sources == nil {
		sources = &typeutil.Map{}
		r.pairs.Set(c.To, sources)
	}

	sources.Set(c.From, c)
}

// function returns the conversion already declaring pkgPath.name.
func (r *registry) function(pkgPath, name string) *Conversion {
	return r.funcs[funcKey(pkgPath, name)]
}

func funcKey(pkgPath, name string) string {
	return pkgPath + "." + name
}
