package analyze

import "go/types"

// WalkNamed calls fn for every named or alias type appearing in t,
// including element, key, field and type argument types.
func WalkNamed(t types.Type, fn func(*types.TypeName)) {
	switch tt := t.(type) {
	case *types.Named:
		fn(tt.Obj())

		if args := tt.TypeArgs(); args != nil {
			for i := range args.Len() {
				WalkNamed(args.At(i), fn)
			}
		}
	case *types.Alias:
		fn(tt.Obj())
	case *types.Pointer:
		WalkNamed(tt.Elem(), fn)
	case *types.Slice:
		WalkNamed(tt.Elem(), fn)
	case *types.Array:
		WalkNamed(tt.Elem(), fn)
	case *types.Map:
		WalkNamed(tt.Key(), fn)
		WalkNamed(tt.Elem(), fn)
	case *types.Chan:
		WalkNamed(tt.Elem(), fn)
	case *types.Struct:
		for i := range tt.NumFields() {
			WalkNamed(tt.Field(i).Type(), fn)
		}
	}
}
