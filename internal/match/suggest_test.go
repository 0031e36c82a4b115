package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"basic.Foo", "basic.Bar", "basic.Baz", "basic.Label", "basic.TokenAlpha"}

	t.Run("close typo", func(t *testing.T) {
		assert.Equal(t, []string{"basic.Label"}, Suggest("Lable", candidates, 3, DefaultSuggestScore))
	})

	t.Run("ties ordered by name", func(t *testing.T) {
		assert.Equal(t, []string{"basic.Bar", "basic.Baz"}, Suggest("Baa", candidates, 3, DefaultSuggestScore))
	})

	t.Run("limit", func(t *testing.T) {
		assert.Len(t, Suggest("Ba", candidates, 1, 0.1), 1)
	})

	t.Run("nothing close", func(t *testing.T) {
		assert.Empty(t, Suggest("Quux", candidates, 3, DefaultSuggestScore))
	})

	t.Run("separator insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"basic.TokenAlpha"}, Suggest("token_alpha", candidates, 3, DefaultSuggestScore))
	})
}
