package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceHelpers(t *testing.T) {
	assert.True(t, IsEmpty([]int{}))
	assert.True(t, IsSingle([]int{1}))
	assert.False(t, IsSingle([]int{1, 2}))

	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = Last([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = Last([]string(nil))
	assert.False(t, ok)
}

func TestPairs(t *testing.T) {
	assert.Nil(t, Pairs([]string{"a"}))
	assert.Equal(t, [][2]string{{"a", "b"}}, Pairs([]string{"a", "b"}))
	assert.Equal(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}, Pairs([]string{"a", "b", "c", "d"}))
}

func TestExported(t *testing.T) {
	assert.True(t, Exported("Foo"))
	assert.False(t, Exported("foo"))
	assert.False(t, Exported(""))
	assert.Equal(t, "basic", PkgAlias("newtype-generator/examples/basic"))
	assert.Equal(t, "", PkgAlias(""))
}
