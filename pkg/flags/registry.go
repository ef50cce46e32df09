// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"iter"
	"sync"

	"tailscale.com/types/lazy"
	"tailscale.com/util/mak"
)

// Reserved flag names checked by Parse once the scan is complete.
const (
	HelpFlag    = "help"
	VersionFlag = "version"
)

// Registry is an ordered collection of flags keyed by name.
//
// Registration is expected to finish before Parse is called. A name that is
// registered twice shadows the earlier flag for lookup, but both stay in the
// ordered list and therefore both appear in the usage text.
type Registry struct {
	mu     sync.Mutex
	byName map[string]Descriptor
	list   []Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry lazy.SyncValue[*Registry]

// Default returns the process-wide registry used by Define. It is created on
// first use and already holds the help and version flags.
func Default() *Registry {
	return defaultRegistry.Get(func() *Registry {
		r := NewRegistry()
		RegisterBuiltins(r)
		return r
	})
}

// RegisterBuiltins registers the reserved help and version flags in r.
func RegisterBuiltins(r *Registry) (help, version *Flag[bool]) {
	help = New(r, HelpFlag, "show help", false)
	version = New(r, VersionFlag, "show version", false)
	return help, version
}

// Register appends d to the ordered list and makes it the lookup target for
// its name.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, d)
	mak.Set(&r.byName, d.Name(), d)
}

// Lookup returns the flag registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byName[name]
	return d, ok
}

// All yields every registered flag in registration order. The sequence can
// be ranged over any number of times.
func (r *Registry) All() iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		r.mu.Lock()
		list := r.list
		r.mu.Unlock()
		for _, d := range list {
			if !yield(d) {
				return
			}
		}
	}
}

// Len reports the number of registrations, duplicates included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.list)
}

// isSet reports whether name is a registered bool flag whose value is true.
func (r *Registry) isSet(name string) bool {
	d, ok := r.Lookup(name)
	if !ok {
		return false
	}
	f, ok := d.(*Flag[bool])
	return ok && f.Value()
}
