package main

import (
	"errors"
	"io"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
)

// Options is the root of the command tree. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Verbose bool `short:"v" long:"verbose" description:"Log debug events"`

	Gen     *GenCmd     `command:"gen"     description:"Generate conversion functions from a rule file"`
	Check   *CheckCmd   `command:"check"   description:"Validate and resolve a rule file without writing"`
	Analyze *AnalyzeCmd `command:"analyze" description:"List the newtypes and unions of packages"`

	stdout io.Writer
	stderr io.Writer
}

// Init instantiates the sub-command referenced by the first positional
// argument so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "gen":
		o.Gen = &GenCmd{root: o}
	case "check":
		o.Check = &CheckCmd{root: o}
	case "analyze":
		o.Analyze = &AnalyzeCmd{root: o}
	}
}

// logger returns the console logger writing to stderr.
func (o *Options) logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if o.Verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: o.stderr, NoColor: true}).
		Level(level).
		With().Timestamp().
		Logger()
}

// Run parses args, executes the selected command and returns the exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	opts := &Options{stdout: stdout, stderr: stderr}

	// go-flags only sees the command name after global flags.
	for _, arg := range args {
		if len(arg) > 0 && arg[0] != '-' {
			opts.Init(arg)
			break
		}
	}

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "newtype-generator"

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			_, _ = io.WriteString(stdout, err.Error()+"\n")
			return 0
		}

		_, _ = io.WriteString(stderr, err.Error()+"\n")

		return 1
	}

	return 0
}
