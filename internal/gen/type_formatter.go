package gen

import (
	"go/types"

	"github.com/dave/jennifer/jen"

	"newtype-generator/internal/analyze"
)

// typeCode renders t as jennifer code. Named types are qualified by their
// package path; jennifer drops the qualifier for the file's own package.
func typeCode(t types.Type) *jen.Statement {
	switch tt := t.(type) {
	case *types.Basic:
		if tt.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer")
		}

		return jen.Id(tt.Name())

	case *types.Named:
		s := objCode(tt.Obj())

		if args := tt.TypeArgs(); args != nil && args.Len() > 0 {
			list := make([]jen.Code, args.Len())
			for i := range args.Len() {
				list[i] = typeCode(args.At(i))
			}

			s.Types(list...)
		}

		return s

	case *types.Alias:
		return objCode(tt.Obj())

	case *types.Pointer:
		return jen.Op("*").Add(typeCode(tt.Elem()))

	case *types.Slice:
		return jen.Index().Add(typeCode(tt.Elem()))

	case *types.Array:
		return jen.Index(jen.Lit(int(tt.Len()))).Add(typeCode(tt.Elem()))

	case *types.Map:
		return jen.Map(typeCode(tt.Key())).Add(typeCode(tt.Elem()))

	case *types.Chan:
		switch tt.Dir() {
		case types.SendOnly:
			return jen.Chan().Op("<-").Add(typeCode(tt.Elem()))
		case types.RecvOnly:
			return jen.Op("<-").Chan().Add(typeCode(tt.Elem()))
		default:
			return jen.Chan().Add(typeCode(tt.Elem()))
		}

	case *types.Struct:
		fields := make([]jen.Code, tt.NumFields())

		for i := range tt.NumFields() {
			f := tt.Field(i)

			var field *jen.Statement
			if f.Embedded() {
				field = typeCode(f.Type())
			} else {
				field = jen.Id(f.Name()).Add(typeCode(f.Type()))
			}

			if tag := tt.Tag(i); tag != "" {
				field.Lit(tag)
			}

			fields[i] = field
		}

		return jen.Struct(fields...)

	case *types.Interface:
		if tt.Empty() {
			return jen.Id("any")
		}

		return jen.Id(types.TypeString(tt, nil))

	case *types.TypeParam:
		return jen.Id(tt.Obj().Name())

	default:
		return jen.Id(types.TypeString(t, nil))
	}
}

func objCode(obj *types.TypeName) *jen.Statement {
	if obj.Pkg() == nil {
		return jen.Id(obj.Name())
	}

	return jen.Qual(obj.Pkg().Path(), obj.Name())
}

// convertCode renders the Go conversion to(v).
func convertCode(to types.Type, v jen.Code) *jen.Statement {
	switch to.(type) {
	case *types.Pointer, *types.Chan, *types.Signature:
		return jen.Parens(typeCode(to)).Call(v)
	default:
		return typeCode(to).Call(v)
	}
}

// importNames registers the package name of every package t refers to, so
// imports whose name differs from the last path element are not aliased.
func importNames(f *jen.File, t types.Type) {
	analyze.WalkNamed(t, func(obj *types.TypeName) {
		if obj.Pkg() != nil {
			f.ImportName(obj.Pkg().Path(), obj.Pkg().Name())
		}
	})
}
