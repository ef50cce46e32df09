// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUsage(t *testing.T) {
	r := NewRegistry()
	RegisterBuiltins(r)
	New(r, "int32_f", "int32_flags", int32(10))
	New(r, "bool_f", "bool_flags", false)
	New(r, "double_f", "double_flags", 40.0)
	New(r, "string_f", "string_flags", "str")

	want := "spm 0.2.2\n\nUsage: prog [options] files\n\n" +
		"  --help (show help)  type: bool default: false\n" +
		"  --version (show version)  type: bool default: false\n" +
		"  --int32_f (int32_flags)  type: int32 default: 10\n" +
		"  --bool_f (bool_flags)  type: bool default: false\n" +
		"  --double_f (double_flags)  type: double default: 40\n" +
		"  --string_f (string_flags)  type: string default: \"str\"\n" +
		"\n\n"
	got := r.Usage("spm 0.2.2\n\nUsage: prog [options] files")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Usage() mismatch (-want +got):\n%s", diff)
	}
}

func TestUsageOneLinePerFlag(t *testing.T) {
	f := newTestFlags()
	if _, err := f.reg.Parse([]string{"p", "--int32_f=1", "--bool_f"}); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, line := range strings.Split(f.reg.Usage("usage"), "\n") {
		if strings.HasPrefix(line, "  --") {
			name, _, _ := strings.Cut(strings.TrimPrefix(line, "  --"), " ")
			got = append(got, name)
		}
	}
	if diff := cmp.Diff(names(f.reg), got); diff != "" {
		t.Errorf("usage lines mismatch (-want +got):\n%s", diff)
	}
	// Defaults, not current values, are shown.
	if !strings.Contains(f.reg.Usage(""), "--int32_f (int32_flags)  type: int32 default: 10\n") {
		t.Error("usage does not show the int32_f default")
	}
}

func TestUsageConfig(t *testing.T) {
	c := NewUsageConfig()
	if _, ok := c.VersionString(); ok {
		t.Error("VersionString() ok with no producer")
	}
	c.SetUsageMessage("first")
	c.SetUsageMessage("second")
	if got := c.UsageMessage(); got != "second" {
		t.Errorf("UsageMessage() = %q, want %q", got, "second")
	}
	c.SetVersionString(func() string { return "spm 1.0.0\n" })
	if got, ok := c.VersionString(); !ok || got != "spm 1.0.0\n" {
		t.Errorf("VersionString() = %q, %v", got, ok)
	}
	c.SetVersionString(nil)
	if _, ok := c.VersionString(); ok {
		t.Error("VersionString() ok after clearing the producer")
	}
}

func TestDefaultUsage(t *testing.T) {
	if DefaultUsage() != DefaultUsage() {
		t.Fatal("DefaultUsage() returned different configs")
	}
	SetProgramUsageMessage("hello")
	if got := DefaultUsage().UsageMessage(); got != "hello" {
		t.Errorf("UsageMessage() = %q, want %q", got, "hello")
	}
	SetVersionString(func() string { return "v" })
	if got, ok := DefaultUsage().VersionString(); !ok || got != "v" {
		t.Errorf("VersionString() = %q, %v", got, ok)
	}
	SetVersionString(nil)
}
