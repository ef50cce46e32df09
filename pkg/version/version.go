// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Package is the name printed in front of the version.
const Package = "spm"

// buildVersion is injected at build time via -ldflags.
var buildVersion string

// Version returns the release version if set, otherwise falls back to the
// commit hash. A release version that parses as semver is normalized, so
// "v1.2.3" and "1.2.3" print the same.
func Version() string {
	v := strings.TrimSpace(buildVersion)
	if v == "" {
		return VersionCommit()
	}
	if sv, err := semver.NewVersion(v); err == nil {
		return sv.String()
	}
	return v
}

// Semver returns the release version, if one was injected and is valid.
func Semver() (*semver.Version, bool) {
	v := strings.TrimSpace(buildVersion)
	if v == "" {
		return nil, false
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return nil, false
	}
	return sv, true
}

// String returns "<Package> <Version>", the line printed by --version.
func String() string {
	return fmt.Sprintf("%s %s", Package, Version())
}

// VersionCommit returns the commit hash of the current build.
func VersionCommit() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var dirty bool
	var commit string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if commit == "" {
		return "dev"
	}

	if len(commit) >= 9 {
		commit = commit[:9]
	}
	if dirty {
		commit += "+dirty"
	}
	return commit
}
