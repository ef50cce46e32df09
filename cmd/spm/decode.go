// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yeetrun/spm/pkg/cmdinit"
	"github.com/yeetrun/spm/pkg/flags"
	"github.com/yeetrun/spm/pkg/version"
)

func (a *app) handleDecode(ctx context.Context, args []string) error {
	reg := cmdinit.NewRegistry()
	model := flags.New(reg, "model", "tokenizer encoding name", a.cfg.Model)
	inputFormat := flags.New(reg, "input_format", "choose from id or piece", formatPiece)
	output := flags.New(reg, "output", "output filename", "")
	argv := commandArgs("decode", args)
	rest, err := a.parseOptions(reg, &argv)
	if err != nil {
		return err
	}

	format := inputFormat.Value()
	if format != formatID && format != formatPiece {
		return fmt.Errorf("unknown input format %q", format)
	}
	tk, err := a.load(model.Value())
	if err != nil {
		return err
	}

	decodeLine := func(line string) (string, error) {
		if format == formatPiece {
			// Pieces hold no whitespace of their own; only ' ' separates them.
			return tk.DecodePieces(strings.Split(line, " ")), nil
		}
		fields := strings.Fields(line)
		ids := make([]int, len(fields))
		for i, f := range fields {
			id, err := strconv.Atoi(f)
			if err != nil {
				return "", fmt.Errorf("invalid id %q", f)
			}
			ids[i] = id
		}
		return tk.Decode(ids), nil
	}

	return a.transform(ctx, rest[1:], 1, output.Value(), decodeLine)
}

// handleFlags prints the usage listing of the encode command.
func (a *app) handleFlags(_ context.Context, _ []string) error {
	reg := cmdinit.NewRegistry()
	newEncodeFlags(reg, a.cfg.Model)
	msg := fmt.Sprintf("%s\n\nUsage: spm encode [options] files", version.String())
	return reg.WriteUsage(a.stdout, msg)
}
