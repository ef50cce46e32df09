// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// spm encodes text to token ids or pieces and decodes them back.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/spm/pkg/cmdinit"
	"github.com/yeetrun/spm/pkg/flags"
	"github.com/yeetrun/spm/pkg/logutil"
	"github.com/yeetrun/spm/pkg/tokenizer"
	"github.com/yeetrun/spm/pkg/version"
	"golang.org/x/term"
)

type config struct {
	LogFormat string `env:"SPM_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"SPM_LOG_LEVEL" envDefault:"info"`
	Model     string `env:"SPM_MODEL" envDefault:"cl100k_base"`
}

type globalFlagsParsed struct {
	LogFormat string `flag:"log-format" help:"Log format, text or json (SPM_LOG_FORMAT)"`
	LogLevel  string `flag:"log-level" help:"Minimum log level (SPM_LOG_LEVEL)"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

type app struct {
	cfg    config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	color  bool

	level *slog.LevelVar
	log   *slog.Logger
	usage *flags.UsageConfig
	load  func(model string) (*tokenizer.Tokenizer, error)
}

func newApp(cfg config) *app {
	level := new(slog.LevelVar)
	return &app{
		cfg:    cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		color:  !color.NoColor && term.IsTerminal(int(os.Stderr.Fd())),
		level:  level,
		usage:  flags.NewUsageConfig(),
		load:   tokenizer.Load,
	}
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("spm: %v", err))
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := newApp(cfg).run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit status.
func (a *app) run(ctx context.Context, args []string) int {
	globalFlags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		a.printError(err)
		return 1
	}
	if globalFlags.LogFormat != "" {
		a.cfg.LogFormat = globalFlags.LogFormat
	}
	if globalFlags.LogLevel != "" {
		a.cfg.LogLevel = globalFlags.LogLevel
	}
	a.level.Set(logutil.ParseLevel(a.cfg.LogLevel))
	a.log = logutil.New(a.stderr, a.cfg.LogFormat, a.level)
	slog.SetDefault(a.log)

	handlers := map[string]yargs.SubcommandHandler{
		"encode": a.handleEncode,
		"decode": a.handleDecode,
		"flags":  a.handleFlags,
	}
	err = yargs.RunSubcommandsWithGroups(ctx, remaining, buildHelpConfig(), globalFlagsParsed{}, handlers, nil)
	if err == nil {
		return 0
	}
	var ee *cmdinit.ExitError
	if errors.As(err, &ee) {
		// cmdinit already printed what the user needs to see.
		return ee.Code
	}
	a.printError(err)
	return 1
}

func (a *app) printError(err error) {
	c := color.New(color.FgRed)
	if a.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(a.stderr, "spm: %v\n", err)
}

func buildHelpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "spm",
			Description: "Encode text into token ids or pieces and decode them back.",
			Examples: []string{
				"spm encode --output_format=id input.txt",
				"spm encode --extra_options=reverse:eos < input.txt",
				"spm decode --input_format=id ids.txt",
				"spm flags",
			},
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			"encode": {
				Name:        "encode",
				Description: "Encode each input line",
				Usage:       "[--model=NAME] [--output_format=id|piece] [--extra_options=reverse:eos] [FILE...]",
				Examples:    []string{"spm encode -output_format id a.txt b.txt"},
			},
			"decode": {
				Name:        "decode",
				Description: "Decode each line of ids or pieces",
				Usage:       "[--model=NAME] [--input_format=id|piece] [FILE...]",
			},
			"flags": {
				Name:        "flags",
				Description: "Print the flags accepted by encode",
			},
		},
	}
}

// commandArgs turns the handler arguments into an argv whose first element
// names the command, for example "spm encode".
func commandArgs(name string, args []string) []string {
	argv := []string{"spm " + name}
	if i := slices.Index(args, name); i >= 0 {
		argv = append(argv, args[:i]...)
		return append(argv, args[i+1:]...)
	}
	return append(argv, args...)
}

func (a *app) parseOptions(reg *flags.Registry, argv *[]string) ([]string, error) {
	return cmdinit.ParseCommandLineFlags(argv, cmdinit.Options{
		Registry:   reg,
		Usage:      a.usage,
		Package:    version.Package,
		Version:    version.Version(),
		RemoveArgs: true,
		Stdout:     a.stdout,
		Stderr:     a.stderr,
		NoExit:     true,
		Level:      a.level,
	})
}
