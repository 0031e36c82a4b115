package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"TokenAlpha", "tokenalpha"},
		{"token_alpha", "tokenalpha"},
		{"token-alpha", "tokenalpha"},
		{"HTTPHeader", "httpheader"},
		{"basic.Foo", "basicfoo"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestTokenizeCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"TokenAlpha", []string{"Token", "Alpha"}},
		{"labelFromAny", []string{"label", "From", "Any"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"parseURL", []string{"parse", "URL"}},
		{"from_bytes", []string{"from", "bytes"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"AbC", []string{"Ab", "C"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizeCamelCase(tt.input))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "token_alpha", SnakeCase("TokenAlpha"))
	assert.Equal(t, "http_header", SnakeCase("HTTPHeader"))
	assert.Equal(t, "basic_foo", SnakeCase("basic.Foo"))
	assert.Equal(t, "label", SnakeCase("Label"))
}
