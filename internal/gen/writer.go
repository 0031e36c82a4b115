package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory, creating
// it when missing. Files in the directory that carry the generated-code
// header but are not part of files are removed, so renamed targets leave
// nothing stale behind.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	keep := make(map[string]bool, len(files))
	for _, file := range files {
		keep[file.Filename] = true
	}

	if err := removeStale(outputDir, keep); err != nil {
		return err
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

func removeStale(dir string, keep map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading output directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || keep[e.Name()] || !strings.HasSuffix(e.Name(), ".go") {
			continue
		}

		p := filepath.Join(dir, e.Name())

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.Name(), err)
		}

		if !bytes.HasPrefix(content, []byte("// "+Header)) {
			continue
		}

		if err := os.Remove(p); err != nil {
			return fmt.Errorf("removing stale file %s: %w", e.Name(), err)
		}
	}

	return nil
}
