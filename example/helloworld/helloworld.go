// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/yeetrun/spm/pkg/cmdinit"
	"github.com/yeetrun/spm/pkg/flags"
	"github.com/yeetrun/spm/pkg/logutil"
	"github.com/yeetrun/spm/pkg/version"
)

var (
	greeting = flags.Define("greeting", "text to print", "Hello, World!")
	count    = flags.Define("count", "number of greetings, 0 prints forever", int32(0))
	interval = flags.Define("interval", "seconds between greetings", 2.0)
)

func main() {
	argv := os.Args
	if _, err := cmdinit.ParseCommandLineFlags(&argv, cmdinit.Options{
		Package:    version.Package,
		Version:    version.Version(),
		UsageText:  "[options]",
		RemoveArgs: true,
	}); err != nil {
		return
	}
	slog.SetDefault(logutil.New(os.Stderr, "text", nil))

	for i := int32(0); count.Value() == 0 || i < count.Value(); i++ {
		println(greeting.Value())
		slog.Debug("greeted", "n", i+1)
		time.Sleep(time.Duration(interval.Value() * float64(time.Second)))
	}
}
