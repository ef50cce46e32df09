// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yeetrun/spm/pkg/cmdinit"
	"github.com/yeetrun/spm/pkg/fileutil"
	"github.com/yeetrun/spm/pkg/flags"
	"github.com/yeetrun/spm/pkg/tokenizer"
	"golang.org/x/sync/errgroup"
)

const (
	formatID    = "id"
	formatPiece = "piece"
)

type encodeFlags struct {
	model        *flags.Flag[string]
	outputFormat *flags.Flag[string]
	output       *flags.Flag[string]
	extraOptions *flags.Flag[string]
	jobs         *flags.Flag[int32]
}

func newEncodeFlags(r *flags.Registry, model string) *encodeFlags {
	return &encodeFlags{
		model:        flags.New(r, "model", "tokenizer encoding name", model),
		outputFormat: flags.New(r, "output_format", "choose from id or piece", formatPiece),
		output:       flags.New(r, "output", "output filename", ""),
		extraOptions: flags.New(r, "extra_options", "':' separated encoder extra options, e.g., \"reverse:eos\"", ""),
		jobs:         flags.New(r, "jobs", "number of input files encoded concurrently", int32(4)),
	}
}

func (a *app) handleEncode(ctx context.Context, args []string) error {
	reg := cmdinit.NewRegistry()
	f := newEncodeFlags(reg, a.cfg.Model)
	argv := commandArgs("encode", args)
	rest, err := a.parseOptions(reg, &argv)
	if err != nil {
		return err
	}

	format := f.outputFormat.Value()
	if format != formatID && format != formatPiece {
		return fmt.Errorf("unknown output format %q", format)
	}
	opts, err := tokenizer.ParseOptions(f.extraOptions.Value())
	if err != nil {
		return err
	}
	tk, err := a.load(f.model.Value())
	if err != nil {
		return err
	}

	encodeLine := func(line string) (string, error) {
		if format == formatID {
			ids, err := tk.EncodeWith(line, opts)
			if err != nil {
				return "", err
			}
			return joinIDs(ids), nil
		}
		pieces, err := tk.EncodeAsPiecesWith(line, opts)
		if err != nil {
			return "", err
		}
		return strings.Join(pieces, " "), nil
	}

	return a.transform(ctx, rest[1:], int(f.jobs.Value()), f.output.Value(), encodeLine)
}

func joinIDs(ids []int) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// transform applies fn to every line of the named files, or of stdin when
// there are none, and writes the results to output (stdout if empty) in input
// order. Files are processed by up to jobs goroutines.
func (a *app) transform(ctx context.Context, files []string, jobs int, output string, fn func(string) (string, error)) error {
	var results [][]string
	if len(files) == 0 {
		lines, err := transformLines(ctx, a.stdin, fn)
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		results = [][]string{lines}
	} else {
		results = make([][]string, len(files))
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(max(jobs, 1))
		for i, name := range files {
			g.Go(func() error {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				lines, err := transformLines(ctx, f, fn)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				a.log.Debug("processed file", "file", name, "lines", len(lines))
				results[i] = lines
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	write := func(w io.Writer) error {
		for _, lines := range results {
			for _, l := range lines {
				if _, err := io.WriteString(w, l+"\n"); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if output == "" {
		bw := bufio.NewWriter(a.stdout)
		if err := write(bw); err != nil {
			return err
		}
		return bw.Flush()
	}
	if err := fileutil.WriteFile(output, 0644, write); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func transformLines(ctx context.Context, r io.Reader, fn func(string) (string, error)) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := fn(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(out)+1, err)
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
