package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newtype-generator/internal/gen"
)

const (
	exampleRules = "../../examples/basic/rules.yaml"
	examplePkg   = "newtype-generator/examples/basic"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_NoCommand(t *testing.T) {
	code, _, stderr := run(t)
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr)
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := run(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "gen")
	assert.Contains(t, stdout, "check")
	assert.Contains(t, stdout, "analyze")
}

func TestRun_GenRequiresRules(t *testing.T) {
	code, _, stderr := run(t, "gen")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "rules")
}

func TestRun_Check(t *testing.T) {
	code, stdout, stderr := run(t, "-v", "check", "-r", exampleRules, "--dump")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stderr, "rule file is valid")
	assert.Contains(t, stderr, "registered conversion")
	assert.Contains(t, stderr, "chain_native_link")

	assert.Contains(t, stdout, `"conv.BazFromString"`)
	assert.Contains(t, stdout, `"basic.FooFromLabel"`)
	assert.Contains(t, stdout, `"~string | ~[]byte"`)
}

func TestRun_CheckReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yaml")

	require.NoError(t, os.WriteFile(rulesPath, []byte(`
wrap:
  - wrapper: Fooo
    source: string
`), 0o644))

	code, _, stderr := run(t, "check", "-r", rulesPath, "-p", examplePkg)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "type_not_found")
	assert.Contains(t, stderr, "Fooo")
	assert.Contains(t, stderr, "rule file has errors")
}

func TestRun_Gen(t *testing.T) {
	out := filepath.Join(t.TempDir(), "conv")

	code, _, stderr := run(t, "gen",
		"-r", exampleRules,
		"-o", out,
		"-n", "generated",
		"--single-file", "all_conv.go",
	)

	// The temporary directory lies outside the module: its import path is unknown.
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "set output.path")

	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	data, err := os.ReadFile(exampleRules)
	require.NoError(t, err)

	data = bytes.Replace(data, []byte("dir: conv"), []byte("dir: conv\n  path: example.com/generated"), 1)
	require.NoError(t, os.WriteFile(rulesPath, data, 0o644))

	code, _, stderr = run(t, "gen",
		"-r", rulesPath,
		"-p", examplePkg,
		"-o", out,
		"-n", "generated",
		"--single-file", "all_conv.go",
	)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "generated")

	content, err := os.ReadFile(filepath.Join(out, "all_conv.go"))
	require.NoError(t, err)

	src := string(content)
	assert.True(t, strings.HasPrefix(src, "// "+gen.Header))
	assert.Contains(t, src, "package generated\n")
	assert.Contains(t, src, "func BazFromString(v string) basic.Baz {")
	assert.Contains(t, src, "func LabelFromAny[T ~string | ~[]byte](v T) basic.Label {")

	// Without -n the package is named after the output directory.
	things := filepath.Join(t.TempDir(), "things")

	code, _, stderr = run(t, "gen", "-r", rulesPath, "-p", examplePkg, "-o", things)
	require.Equal(t, 0, code, stderr)

	content, err = os.ReadFile(filepath.Join(things, "basic_foo_conv.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package things\n")
}

func TestRun_Analyze(t *testing.T) {
	code, stdout, stderr := run(t, "analyze", "-p", examplePkg)
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, examplePkg+"\n")
	assert.Contains(t, stdout, "  basic.Foo: struct newtype, field Value string\n")
	assert.Contains(t, stdout, "  basic.Label: defined newtype of string\n")
	assert.Contains(t, stdout, "basic.Token: union, cases [Alpha, Beta (*TokenBeta)]")
}
