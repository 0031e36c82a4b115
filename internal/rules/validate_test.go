package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newtype-generator/internal/analyze/analyzetest"
	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/rules"
)

func validate(t *testing.T, yaml string) *diagnostic.Diagnostics {
	t.Helper()

	rf, err := rules.Parse([]byte(yaml))
	require.NoError(t, err)

	return rules.Validate(rf, analyzetest.BasicGraph(t))
}

func TestValidate_Valid(t *testing.T) {
	d := validate(t, `
output:
  dir: conv
conversions:
  - from: Label
    to: Foo
    func: FooFromLabel
wrap:
  - wrapper: Foo
    source: [string, "[]byte"]
  - wrapper: Token
    case: Alpha
    source: string
    func: TokenFromString
  - wrapper: Token
    case: TokenBeta
    source: int
wrap_any:
  - wrapper: Label
    also: "[]byte"
chain:
  - [string, Foo, Bar, Baz]
`)
	assert.True(t, d.IsValid(), d.Error())
	assert.NoError(t, d.Error())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		code    string
		subject string
	}{
		{
			name: "version",
			yaml: "version: \"2\"\n",
			code: rules.CodeUnsupportedVersion,
		},
		{
			name:    "output package",
			yaml:    "output:\n  package: my-conv\n",
			code:    rules.CodeInvalidOutput,
			subject: "my-conv",
		},
		{
			name:    "unknown wrapper",
			yaml:    "wrap:\n  - wrapper: Fooo\n    source: string\n",
			code:    rules.CodeTypeNotFound,
			subject: "Fooo",
		},
		{
			name:    "unknown source",
			yaml:    "wrap:\n  - wrapper: Foo\n    source: strng\n",
			code:    rules.CodeTypeNotFound,
			subject: "strng",
		},
		{
			name:    "not a newtype",
			yaml:    "wrap:\n  - wrapper: Pair\n    source: string\n",
			code:    rules.CodeNotANewtype,
			subject: "Pair",
		},
		{
			name:    "union without case",
			yaml:    "wrap:\n  - wrapper: Token\n    source: string\n",
			code:    rules.CodeCaseRequired,
			subject: "Token",
		},
		{
			name:    "case on newtype",
			yaml:    "wrap_any:\n  - wrapper: Label\n    case: Alpha\n",
			code:    rules.CodeCaseOnNonUnion,
			subject: "Label",
		},
		{
			name:    "unknown case",
			yaml:    "wrap:\n  - wrapper: Token\n    case: Gamma\n    source: string\n",
			code:    rules.CodeCaseNotFound,
			subject: "Token",
		},
		{
			name: "missing wrapper",
			yaml: "wrap:\n  - source: string\n",
			code: rules.CodeMissingField,
		},
		{
			name:    "missing source",
			yaml:    "wrap:\n  - wrapper: Foo\n",
			code:    rules.CodeMissingField,
			subject: "Foo",
		},
		{
			name:    "func with several sources",
			yaml:    "wrap:\n  - wrapper: Foo\n    source: [string, \"[]byte\"]\n    func: MakeFoo\n",
			code:    rules.CodeFuncMultipleSources,
			subject: "MakeFoo",
		},
		{
			name:    "invalid func name",
			yaml:    "chain:\n  - types: [Label, Text]\n    func: text-of\n",
			code:    rules.CodeInvalidFuncName,
			subject: "text-of",
		},
		{
			name: "short chain",
			yaml: "chain:\n  - [Foo]\n",
			code: rules.CodeChainTooShort,
		},
		{
			name:    "unknown chain type",
			yaml:    "chain:\n  - [string, Foo, Barr]\n",
			code:    rules.CodeTypeNotFound,
			subject: "Barr",
		},
		{
			name:    "unknown conversion func",
			yaml:    "conversions:\n  - {from: Label, to: Foo, func: FooFromLable}\n",
			code:    rules.CodeFuncNotFound,
			subject: "FooFromLable",
		},
		{
			name:    "conversion signature",
			yaml:    "conversions:\n  - {from: Text, to: Foo, func: FooFromLabel}\n",
			code:    rules.CodeSignatureMismatch,
			subject: "FooFromLabel",
		},
		{
			name:    "not a conversion",
			yaml:    "conversions:\n  - {from: Foo, to: string, func: Describe}\n",
			code:    rules.CodeSignatureMismatch,
			subject: "Describe",
		},
		{
			name: "conversion missing to",
			yaml: "conversions:\n  - {from: Label, func: FooFromLabel}\n",
			code: rules.CodeMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validate(t, tt.yaml)
			require.False(t, d.IsValid())
			require.True(t, d.HasCode(tt.code), d.Error())

			if tt.subject == "" {
				return
			}

			for _, e := range d.Errors {
				if e.Code == tt.code {
					assert.Equal(t, tt.subject, e.Subject)
				}
			}
		})
	}
}

func TestValidate_LabelsRules(t *testing.T) {
	d := validate(t, `
wrap:
  - wrapper: Foo
    source: string
  - wrapper: Foo
    source: nope
`)
	require.Len(t, d.Errors, 1)
	assert.Equal(t, "wrap[1]", d.Errors[0].Rule)
	assert.Contains(t, d.Errors[0].String(), "[wrap[1]] nope: [type_not_found]")
}

func TestValidate_Nil(t *testing.T) {
	d := rules.Validate(nil, analyzetest.BasicGraph(t))
	assert.True(t, d.HasCode(rules.CodeRulesNil))

	d = rules.Validate(&rules.RuleFile{}, nil)
	assert.True(t, d.HasCode(rules.CodeGraphNil))
}
