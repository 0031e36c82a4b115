package analyze

import (
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TypeString returns t with packages written as their last path element,
// e.g. "[]basic.Foo" or "map[string]*basic.Label".
func TypeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}

	return types.TypeString(t, func(p *types.Package) string {
		return p.Name()
	})
}

// TypeName returns an identifier fragment naming t, used to build
// conversion function names such as FooFromBytes.
// Examples:
//   - string -> "String"
//   - []byte -> "Bytes"
//   - []basic.Foo -> "FooSlice"
//   - *basic.Foo -> "FooPtr"
//   - [4]int -> "IntArray"
//   - map[string]int -> "StringToIntMap"
func TypeName(t types.Type) string {
	switch tt := t.(type) {
	case *types.Alias:
		return upperFirst(tt.Obj().Name())

	case *types.Named:
		var b strings.Builder

		b.WriteString(upperFirst(tt.Obj().Name()))

		if args := tt.TypeArgs(); args != nil {
			for i := range args.Len() {
				b.WriteString(TypeName(args.At(i)))
			}
		}

		return b.String()

	case *types.Basic:
		return upperFirst(tt.Name())

	case *types.Pointer:
		return TypeName(tt.Elem()) + "Ptr"

	case *types.Slice:
		if b, ok := tt.Elem().(*types.Basic); ok {
			switch b.Kind() {
			case types.Byte:
				return "Bytes"
			case types.Rune:
				return "Runes"
			}
		}

		return TypeName(tt.Elem()) + "Slice"

	case *types.Array:
		return TypeName(tt.Elem()) + "Array"

	case *types.Map:
		return TypeName(tt.Key()) + "To" + TypeName(tt.Elem()) + "Map"

	case *types.Chan:
		return TypeName(tt.Elem()) + "Chan"

	case *types.Interface:
		if tt.Empty() {
			return "Any"
		}

		return "Iface"

	case *types.TypeParam:
		return upperFirst(tt.Obj().Name())

	default:
		return "Value"
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
