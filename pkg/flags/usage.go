// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"tailscale.com/types/lazy"
)

// UsageConfig holds the usage message printed above the flag listing and an
// optional producer for the version string.
type UsageConfig struct {
	mu      sync.Mutex
	message string
	version func() string
}

// NewUsageConfig returns an empty UsageConfig.
func NewUsageConfig() *UsageConfig {
	return &UsageConfig{}
}

var defaultUsage lazy.SyncValue[*UsageConfig]

// DefaultUsage returns the process-wide UsageConfig.
func DefaultUsage() *UsageConfig {
	return defaultUsage.Get(NewUsageConfig)
}

// SetProgramUsageMessage sets the usage message of DefaultUsage.
func SetProgramUsageMessage(msg string) {
	DefaultUsage().SetUsageMessage(msg)
}

// SetVersionString sets the version producer of DefaultUsage.
func SetVersionString(fn func() string) {
	DefaultUsage().SetVersionString(fn)
}

// SetUsageMessage replaces the usage message.
func (c *UsageConfig) SetUsageMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = msg
}

func (c *UsageConfig) UsageMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// SetVersionString replaces the version producer. A nil fn clears it.
func (c *UsageConfig) SetVersionString(fn func() string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version = fn
}

// VersionString calls the version producer. ok is false if none is set.
func (c *UsageConfig) VersionString() (s string, ok bool) {
	c.mu.Lock()
	fn := c.version
	c.mu.Unlock()
	if fn == nil {
		return "", false
	}
	return fn(), true
}

// Usage formats the usage text: message, a blank line, then one line per
// registered flag in registration order.
func (r *Registry) Usage(message string) string {
	var b strings.Builder
	r.WriteUsage(&b, message)
	return b.String()
}

// WriteUsage writes the text produced by Usage to w.
func (r *Registry) WriteUsage(w io.Writer, message string) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", message); err != nil {
		return err
	}
	for d := range r.All() {
		if _, err := fmt.Fprintf(w, "  --%s (%s)  type: %s default: %s\n", d.Name(), d.Help(), d.Type(), d.DefaultString()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n\n")
	return err
}
