package main

import (
	"errors"
	"path/filepath"

	"newtype-generator/internal/gen"
)

// GenCmd generates conversion functions and writes them to the output directory.
type GenCmd struct {
	RuleSource

	Output      string `short:"o" long:"output"      description:"Output directory; overrides output.dir"`
	PackageName string `short:"n" long:"name"        description:"Package name of generated files; overrides output.package"`
	SingleFile  string `long:"single-file"           description:"Write every function into this file; overrides output.file"`
	NoComments  bool   `long:"no-comments"           description:"Omit doc comments on generated functions"`

	root *Options
}

func (c *GenCmd) Execute(_ []string) error {
	log := c.root.logger()

	s, err := c.load(log)
	if err != nil {
		return err
	}

	dir := s.outputDir(c.Output)
	if dir == "" {
		return errors.New("output directory must be provided via output.dir or -o/--output")
	}

	pkgPath, err := s.outputPath(dir)
	if err != nil {
		return err
	}

	p, err := s.resolve(pkgPath)
	if err != nil {
		return err
	}

	config := gen.DefaultGeneratorConfig()
	config.PkgPath = pkgPath
	config.GenerateComments = !c.NoComments
	output := s.rules.Output
	output.Dir = dir
	config.PackageName = firstNonEmpty(c.PackageName, output.PackageName())
	config.SingleFile = firstNonEmpty(c.SingleFile, s.rules.Output.File)

	files, err := gen.NewGenerator(config).Generate(p)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, dir); err != nil {
		return err
	}

	for _, f := range files {
		log.Debug().Str("file", filepath.Join(dir, f.Filename)).Msg("written")
	}

	log.Info().
		Int("functions", len(p.Conversions)).
		Int("files", len(files)).
		Str("package", pkgPath).
		Msg("generated")

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
