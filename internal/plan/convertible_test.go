package plan

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertible(t *testing.T) {
	basic := func(k types.BasicKind) types.Type { return types.Typ[k] }

	tests := []struct {
		from, to types.BasicKind
		want     bool
	}{
		{types.Int, types.Int, true},
		{types.Int8, types.Int16, true},
		{types.Int32, types.Int, true},
		{types.Int64, types.Int, false},
		{types.Int, types.Int64, true},
		{types.Uint16, types.Int32, true},
		{types.Uint32, types.Int32, false},
		{types.Uint64, types.Int, false},
		{types.Int8, types.Uint64, false},
		{types.Uint8, types.Uint, true},
		{types.Uint, types.Uint32, false},
		{types.Int16, types.Float32, true},
		{types.Int32, types.Float32, false},
		{types.Uint32, types.Float64, true},
		{types.Int64, types.Float64, false},
		{types.Float32, types.Float64, true},
		{types.Float64, types.Float32, false},
		{types.Float64, types.Int, false},
		{types.Complex64, types.Complex128, true},
		{types.Complex128, types.Complex64, false},
		{types.Int, types.String, false},
		{types.String, types.String, true},
	}

	for _, tt := range tests {
		from, to := basic(tt.from), basic(tt.to)
		t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, convertible(from, to))
		})
	}

	assert.True(t, convertible(types.NewSlice(types.Typ[types.Byte]), types.Typ[types.String]))
}
