// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flags provides typed command-line flags that register themselves
// into a Registry, and a parser that matches argv-like tokens against it.
//
// The library is deliberately small and follows these principles:
//   - A flag is declared once, with a name, help text and a typed default
//   - Declaring a flag registers it; there is no separate registration call
//   - Flags can appear anywhere in the command line
//   - Unknown flags are always an error, never passed through
//   - Parsing never exits the process; callers decide what an outcome means
//
// # Basic Usage
//
//	reg := flags.NewRegistry()
//	help, version := flags.RegisterBuiltins(reg)
//	lines := flags.New(reg, "lines", "number of lines", int32(10))
//	name := flags.New(reg, "name", "output name", "out")
//
//	res, err := reg.Parse(os.Args)
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	    fmt.Fprint(os.Stderr, reg.Usage("usage: prog [options] files"))
//	    os.Exit(1)
//	}
//	switch res.Outcome {
//	case flags.HelpRequested:
//	    ...
//	}
//	fmt.Println(lines.Value(), name.Value(), res.Args[1:])
//
// For the process-wide style, Define registers into Default():
//
//	var verbose = flags.Define("verbose", "verbose output", false)
//
// # Flag Syntax
//
// One or two leading dashes are accepted and are equivalent:
//   - Attached value: -name=value, --name=value (value may be empty)
//   - Separate value: -name value, --name value (only if value does not start with "-")
//   - Bare flag: -name, --name (value is the empty string)
//
// A bare boolean flag is true. Every other type applies its own parse rule to
// the empty string, which for numeric types is an error. The attached form
// always wins: "--name=" never consumes the next token.
//
// # Supported Types
//
//	string, bool, int32, uint32, int64, uint64, float64 ("double"), float32 ("float")
//
// # Flag Files
//
// LoadFile applies name/value pairs from a TOML or YAML document, which lets
// a long flag list live in a file:
//
//	# encode.toml
//	model = "cl100k_base"
//	output_format = "id"
package flags
