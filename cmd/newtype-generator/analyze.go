package main

import (
	"errors"
	"fmt"

	"newtype-generator/internal/analyze"
)

// AnalyzeCmd prints the newtypes and unions declared by packages.
type AnalyzeCmd struct {
	Packages []string `short:"p" long:"package" description:"Package pattern to load" required:"true"`

	root *Options
}

func (c *AnalyzeCmd) Execute(_ []string) error {
	if len(c.Packages) == 0 {
		return errors.New("at least one package must be provided via -p/--package")
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(c.Packages...)
	if err != nil {
		return err
	}

	for _, path := range graph.PackagePaths() {
		newtypes := graph.Newtypes(path)
		if len(newtypes) == 0 {
			continue
		}

		if _, err := fmt.Fprintln(c.root.stdout, path); err != nil {
			return err
		}

		for _, t := range newtypes {
			if _, err := fmt.Fprintf(c.root.stdout, "  %s\n", graph.Describe(t)); err != nil {
				return err
			}
		}
	}

	return nil
}
