// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdinit is the startup entry point for command-line tools: it sets
// the usage and version text, parses flags, handles help/version/unknown
// flags, and applies the quiet log threshold.
package cmdinit

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/yeetrun/spm/pkg/flags"
	"github.com/yeetrun/spm/pkg/logutil"
	"tailscale.com/types/lazy"
)

// Reserved flag names registered by RegisterBuiltins.
const (
	QuietFlag    = "quiet"
	FlagfileFlag = "flagfile"
)

const defaultUsage = "[options] files"

var (
	// ErrHelpShown is returned in NoExit mode after the usage text was
	// printed for --help.
	ErrHelpShown = errors.New("help shown")

	// ErrVersionShown is returned in NoExit mode after --version.
	ErrVersionShown = errors.New("version shown")
)

// ExitError carries the status a terminating run would have exited with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Options configures ParseCommandLineFlags. The zero value parses against
// Default() and exits the process on help, version and flag errors.
type Options struct {
	// Registry holds the flags to parse. Nil means Default().
	Registry *flags.Registry
	// Usage receives the usage message and version producer. Nil means
	// flags.DefaultUsage().
	Usage *flags.UsageConfig

	// Package and Version form the "<Package> <Version>" line at the top of
	// the usage text and the --version output. An empty Version clears the
	// version producer, so --version prints nothing.
	Package string
	Version string
	// UsageText follows the program name on the Usage line. Empty means
	// "[options] files".
	UsageText string

	// RemoveArgs rewrites *argv to hold only the residual tokens.
	RemoveArgs bool

	Stdout io.Writer
	Stderr io.Writer
	// Exit is called with the exit status. Nil means os.Exit.
	Exit func(code int)
	// NoExit disables Exit; outcomes are returned as errors instead.
	NoExit bool

	// Level is raised to logutil.QuietLevel by --quiet. Nil means
	// logutil.Level().
	Level *slog.LevelVar
}

// RegisterBuiltins registers the quiet and flagfile flags in r.
func RegisterBuiltins(r *flags.Registry) (quiet *flags.Flag[bool], flagfile *flags.Flag[string]) {
	quiet = flags.New(r, QuietFlag, "Suppress logging message.", false)
	flagfile = flags.New(r, FlagfileFlag, "Read flag values from a TOML or YAML file.", "")
	return quiet, flagfile
}

// NewRegistry returns a registry holding help, version, quiet and flagfile.
func NewRegistry() *flags.Registry {
	r := flags.NewRegistry()
	flags.RegisterBuiltins(r)
	RegisterBuiltins(r)
	return r
}

var defaultRegistry lazy.SyncValue[*flags.Registry]

// Default returns flags.Default() with quiet and flagfile registered.
func Default() *flags.Registry {
	return defaultRegistry.Get(func() *flags.Registry {
		r := flags.Default()
		RegisterBuiltins(r)
		return r
	})
}

func (o *Options) registry() *flags.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return Default()
}

func (o *Options) usage() *flags.UsageConfig {
	if o.Usage != nil {
		return o.Usage
	}
	return flags.DefaultUsage()
}

func (o *Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o *Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

func (o *Options) level() *slog.LevelVar {
	if o.Level != nil {
		return o.Level
	}
	return logutil.Level()
}

// exit ends the process with code unless NoExit is set, and returns err
// wrapped with the code for callers whose Exit returned.
func (o *Options) exit(code int, err error) error {
	if !o.NoExit {
		if o.Exit != nil {
			o.Exit(code)
		} else {
			os.Exit(code)
		}
	}
	return &ExitError{Code: code, Err: err}
}

// ParseCommandLineFlags parses *argv and returns the residual tokens with the
// program name at index 0.
//
// Unknown flags and malformed values print "Unknown/Invalid flag" and the
// usage text to Stderr and exit 1. --help prints the usage text to Stdout and
// exits 1. --version prints the version line to Stdout (nothing if no
// producer is set) and exits 0. In NoExit mode these return an *ExitError
// wrapping the parse error, ErrHelpShown or ErrVersionShown.
func ParseCommandLineFlags(argv *[]string, opts Options) ([]string, error) {
	reg := opts.registry()
	uc := opts.usage()

	prog := ""
	if len(*argv) > 0 {
		prog = (*argv)[0]
	}
	usageText := opts.UsageText
	if usageText == "" {
		usageText = defaultUsage
	}
	header := opts.Package + " " + opts.Version
	uc.SetUsageMessage(fmt.Sprintf("%s\n\nUsage: %s %s", header, prog, usageText))
	if opts.Version != "" {
		uc.SetVersionString(func() string {
			return header + "\n"
		})
	} else {
		uc.SetVersionString(nil)
	}

	res, err := parse(reg, *argv)
	if err != nil {
		fmt.Fprintf(opts.stderr(), "%s\n\n", describe(err))
		reg.WriteUsage(opts.stderr(), uc.UsageMessage())
		return nil, opts.exit(1, err)
	}

	switch res.Outcome {
	case flags.HelpRequested:
		reg.WriteUsage(opts.stdout(), uc.UsageMessage())
		return nil, opts.exit(1, ErrHelpShown)
	case flags.VersionRequested:
		if v, ok := uc.VersionString(); ok {
			io.WriteString(opts.stdout(), v)
		}
		return nil, opts.exit(0, ErrVersionShown)
	}

	if opts.RemoveArgs {
		*argv = append((*argv)[:0], res.Args...)
	}

	if q, ok := reg.Lookup(QuietFlag); ok {
		if f, ok := q.(*flags.Flag[bool]); ok && f.Value() {
			logutil.SetQuiet(opts.level())
		}
	}
	return res.Args, nil
}

// parse runs the registry parser. If the command line names a flag file, the
// file is applied and the command line is parsed again so explicit flags
// override the file. Help and version requests skip the file.
func parse(reg *flags.Registry, args []string) (*flags.Result, error) {
	res, err := reg.Parse(args)
	if err != nil || res.Outcome != flags.Matched {
		return res, err
	}
	d, ok := reg.Lookup(FlagfileFlag)
	if !ok {
		return res, nil
	}
	f, ok := d.(*flags.Flag[string])
	if !ok || f.Value() == "" {
		return res, nil
	}
	if err := reg.LoadFile(f.Value()); err != nil {
		return res, err
	}
	return reg.Parse(args)
}

// describe renders a parse error the way it is shown above the usage text.
func describe(err error) string {
	var ve *flags.ValueError
	if errors.As(err, &ve) {
		return fmt.Sprintf("Unknown/Invalid flag %s: %v", ve.Flag, ve.Err)
	}
	var ue *flags.UnknownFlagError
	if errors.As(err, &ue) {
		return "Unknown/Invalid flag " + ue.Flag
	}
	return err.Error()
}
