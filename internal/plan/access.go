package plan

import (
	"fmt"
	"go/types"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/common"
)

// checkTypes reports named types the output package cannot refer to.
func (r *Resolver) checkTypes(rule string, ts ...types.Type) {
	for _, t := range ts {
		analyze.WalkNamed(t, func(obj *types.TypeName) {
			if r.visible(obj.Pkg(), obj.Exported()) {
				return
			}

			r.diags.AddError(CodeUnexportedType,
				fmt.Sprintf("type %s is unexported and generated code lives in %s", obj.Name(), r.outputDesc()),
				rule, analyze.TypeString(t))
		})
	}
}

// checkField reports struct newtypes whose field cannot be set from the
// output package.
func (r *Resolver) checkField(rule string, info *analyze.TypeInfo) {
	if info == nil || info.Shape != analyze.ShapeStruct || info.Field.Exported {
		return
	}

	if info.ID.PkgPath == r.config.OutputPkgPath {
		return
	}

	r.diags.AddError(CodeUnexportedField,
		fmt.Sprintf("field %s of %s is unexported and generated code lives in %s", info.Field.Name, info.ID.Short(), r.outputDesc()),
		rule, info.ID.Short())
}

// checkLiteralFields reports unexported fields of struct types written out
// literally, as blanket terms are, that belong to another package.
func (r *Resolver) checkLiteralFields(rule string, t types.Type) {
	switch tt := t.(type) {
	case *types.Struct:
		for i := range tt.NumFields() {
			f := tt.Field(i)
			if !r.visible(f.Pkg(), f.Exported()) {
				r.diags.AddError(CodeUnexportedField,
					fmt.Sprintf("field %s of %s is unexported and generated code lives in %s", f.Name(), analyze.TypeString(t), r.outputDesc()),
					rule, analyze.TypeString(t))

				return
			}

			r.checkLiteralFields(rule, f.Type())
		}

	case *types.Pointer:
		r.checkLiteralFields(rule, tt.Elem())
	case *types.Slice:
		r.checkLiteralFields(rule, tt.Elem())
	case *types.Array:
		r.checkLiteralFields(rule, tt.Elem())
	case *types.Chan:
		r.checkLiteralFields(rule, tt.Elem())
	case *types.Map:
		r.checkLiteralFields(rule, tt.Key())
		r.checkLiteralFields(rule, tt.Elem())
	}
}

// checkFunc reports external conversions the output package cannot call.
func (r *Resolver) checkFunc(rule string, c *Conversion) {
	if c == nil || c.Kind != KindExternal {
		return
	}

	if c.PkgPath == r.config.OutputPkgPath || common.Exported(c.Name) {
		return
	}

	r.diags.AddError(CodeUnexportedFunc,
		fmt.Sprintf("function %s is unexported and generated code lives in %s", c.Qualified(), r.outputDesc()),
		rule, c.Qualified())
}

func (r *Resolver) visible(pkg *types.Package, exported bool) bool {
	return exported || pkg == nil || pkg.Path() == r.config.OutputPkgPath
}

func (r *Resolver) outputDesc() string {
	if r.config.OutputPkgPath == "" {
		return "another package"
	}

	return r.config.OutputPkgPath
}
