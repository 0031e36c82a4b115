package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/plan"
	"newtype-generator/internal/rules"
)

// errDiagnostics is returned after error diagnostics have been logged.
var errDiagnostics = errors.New("rule file has errors")

// RuleSource holds the flags shared by gen and check.
type RuleSource struct {
	Rules    string   `short:"r" long:"rules"   description:"Rule file (YAML)" required:"true"`
	Packages []string `short:"p" long:"package" description:"Package pattern to load; overrides the rule file's packages"`
}

// session is one run of the resolution pipeline.
type session struct {
	log   zerolog.Logger
	rules *rules.RuleFile
	graph *analyze.TypeGraph
	// ruleDir is the directory of the rule file. Relative paths inside the
	// rule file are resolved against it; flag values against the working
	// directory.
	ruleDir string
}

// load reads the rule file and loads the packages it names.
func (s *RuleSource) load(log zerolog.Logger) (*session, error) {
	rf, err := rules.LoadFile(s.Rules)
	if err != nil {
		return nil, err
	}

	ruleDir, err := filepath.Abs(filepath.Dir(s.Rules))
	if err != nil {
		return nil, fmt.Errorf("rule file directory: %w", err)
	}

	analyzer := analyze.NewAnalyzer()

	patterns := s.Packages
	if len(patterns) == 0 {
		patterns = rf.Packages
		analyzer.Dir = ruleDir
	}

	if len(patterns) == 0 {
		return nil, errors.New("no packages to load: set packages in the rule file or pass -p")
	}

	log.Debug().Strs("patterns", patterns).Str("dir", analyzer.Dir).Msg("loading packages")

	graph, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	log.Debug().Strs("packages", graph.PackagePaths()).Msg("packages loaded")

	return &session{log: log, rules: rf, graph: graph, ruleDir: ruleDir}, nil
}

// outputDir returns the directory generated files go to, or "" when unset.
func (s *session) outputDir(flagDir string) string {
	if flagDir != "" {
		return flagDir
	}

	dir := s.rules.Output.Dir
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}

	return filepath.Join(s.ruleDir, dir)
}

// outputPath returns the import path of dir.
func (s *session) outputPath(dir string) (string, error) {
	if s.rules.Output.Path != "" {
		return s.rules.Output.Path, nil
	}

	if dir == "" {
		return "", nil
	}

	path, ok := s.graph.ImportPathForDir(dir)
	if !ok {
		return "", fmt.Errorf("cannot derive the import path of %s: set output.path", dir)
	}

	return path, nil
}

// resolve builds the plan and logs its diagnostics.
func (s *session) resolve(outputPkgPath string) (*plan.Plan, error) {
	config := plan.DefaultConfig()
	config.OutputPkgPath = outputPkgPath
	config.Logger = s.log

	p, err := plan.NewResolver(s.graph, s.rules, config).Resolve()
	if err != nil {
		return nil, err
	}

	logDiagnostics(s.log, &p.Diagnostics)

	if p.Diagnostics.HasErrors() {
		return p, errDiagnostics
	}

	return p, nil
}

func logDiagnostics(log zerolog.Logger, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		var ev *zerolog.Event

		switch d.Severity {
		case diagnostic.DiagnosticError:
			ev = log.Error()
		case diagnostic.DiagnosticWarning:
			ev = log.Warn()
		default:
			ev = log.Info()
		}

		ev = ev.Str("code", d.Code)
		if d.Rule != "" {
			ev = ev.Str("rule", d.Rule)
		}

		if d.Subject != "" {
			ev = ev.Str("subject", d.Subject)
		}

		if len(d.Suggestions) > 0 {
			ev = ev.Strs("suggestions", d.Suggestions)
		}

		ev.Msg(d.Message)
	}
}
