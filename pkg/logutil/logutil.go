// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logutil builds slog loggers that share one adjustable level.
package logutil

import (
	"io"
	"log/slog"
	"strings"
)

// QuietLevel is above every level slog defines, so a handler at this level
// drops all records.
const QuietLevel = slog.Level(100)

var level = new(slog.LevelVar)

// Level returns the level shared by loggers created with New and a nil
// LevelVar.
func Level() *slog.LevelVar {
	return level
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w in the given format ("json" or text).
// If lv is nil the shared Level is used.
func New(w io.Writer, format string, lv *slog.LevelVar) *slog.Logger {
	if lv == nil {
		lv = level
	}
	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// SetQuiet silences every logger using lv. A nil lv means the shared Level.
func SetQuiet(lv *slog.LevelVar) {
	if lv == nil {
		lv = level
	}
	lv.Set(QuietLevel)
}

// IsQuiet reports whether lv has been silenced.
func IsQuiet(lv *slog.LevelVar) bool {
	if lv == nil {
		lv = level
	}
	return lv.Level() >= QuietLevel
}
