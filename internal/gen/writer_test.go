package gen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newtype-generator/internal/gen"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conv")

	stale := "// " + gen.Header + "\n\npackage conv\n"
	handWritten := "package conv\n\nfunc Helper() {}\n"

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old_conv.go"), []byte(stale), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.go"), []byte(handWritten), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("// "+gen.Header), 0o644))

	files := []gen.GeneratedFile{
		{Filename: "basic_foo_conv.go", Content: []byte(stale + "\nfunc FooFromString() {}\n")},
	}
	require.NoError(t, gen.WriteFiles(files, dir))

	got, err := os.ReadFile(filepath.Join(dir, "basic_foo_conv.go"))
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, got)

	assert.NoFileExists(t, filepath.Join(dir, "old_conv.go"))
	assert.FileExists(t, filepath.Join(dir, "helper.go"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))

	// Rewriting keeps the current files.
	require.NoError(t, gen.WriteFiles(files, dir))
	assert.FileExists(t, filepath.Join(dir, "basic_foo_conv.go"))
}

func TestWriteFiles_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	err := gen.WriteFiles(nil, filepath.Join(file, "sub"))
	require.Error(t, err)
}
