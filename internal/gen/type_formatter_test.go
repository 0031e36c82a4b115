package gen

import (
	"fmt"
	"go/types"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
)

func TestTypeCode(t *testing.T) {
	pkg := types.NewPackage("example.com/shapes/basic", "basic")
	foo := types.NewNamed(types.NewTypeName(0, pkg, "Foo", nil), types.Typ[types.String], nil)

	tests := []struct {
		name string
		typ  types.Type
		want string
	}{
		{"basic", types.Typ[types.String], "string"},
		{"named", foo, "basic.Foo"},
		{"pointer", types.NewPointer(foo), "*basic.Foo"},
		{"slice", types.NewSlice(types.Typ[types.Byte]), "[]byte"},
		{"array", types.NewArray(types.Typ[types.Int], 4), "[4]int"},
		{"map", types.NewMap(types.Typ[types.String], types.NewSlice(foo)), "map[string][]basic.Foo"},
		{"recv chan", types.NewChan(types.RecvOnly, types.Typ[types.Int]), "<-chan int"},
		{"send chan", types.NewChan(types.SendOnly, types.Typ[types.Int]), "chan<- int"},
		{"empty interface", types.NewInterfaceType(nil, nil).Complete(), "any"},
		{"error", types.Universe.Lookup("error").Type(), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fmt.Sprintf("%#v", typeCode(tt.typ)))
		})
	}
}

func TestTypeCode_Struct(t *testing.T) {
	fields := []*types.Var{
		types.NewField(0, nil, "Value", types.Typ[types.String], false),
	}
	st := types.NewStruct(fields, []string{`json:"value"`})

	code := fmt.Sprintf("%#v", typeCode(st))
	assert.Contains(t, code, "struct {")
	assert.Contains(t, code, `Value string "json:\"value\""`)
}

func TestConvertCode(t *testing.T) {
	v := jen.Id("v")

	assert.Equal(t, "string(v)", fmt.Sprintf("%#v", convertCode(types.Typ[types.String], v)))
	assert.Equal(t, "[]byte(v)", fmt.Sprintf("%#v", convertCode(types.NewSlice(types.Typ[types.Byte]), v)))
	assert.Equal(t, "(*int)(v)", fmt.Sprintf("%#v", convertCode(types.NewPointer(types.Typ[types.Int]), v)))
}
