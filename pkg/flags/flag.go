// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

// Descriptor is the type-erased view of a flag that a Registry stores.
type Descriptor interface {
	// Name is the flag name without leading dashes.
	Name() string
	Help() string
	Type() Type
	// DefaultString is the default value as rendered in help output.
	DefaultString() string
	// String renders the current value the same way DefaultString does.
	String() string
	// SetString parses text according to the flag type and stores the
	// result. On error the current value is left unchanged.
	SetString(text string) error
}

// Flag is a typed command-line flag.
type Flag[T Value] struct {
	name  string
	help  string
	def   string
	codec codec[T]
	value T
}

// New creates a flag and registers it in r.
func New[T Value](r *Registry, name, help string, def T) *Flag[T] {
	c := codecFor[T]()
	f := &Flag[T]{
		name:  name,
		help:  help,
		def:   c.format(def),
		codec: c,
		value: def,
	}
	r.Register(f)
	return f
}

// Define creates a flag in the Default registry.
func Define[T Value](name, help string, def T) *Flag[T] {
	return New(Default(), name, help, def)
}

func (f *Flag[T]) Name() string          { return f.name }
func (f *Flag[T]) Help() string          { return f.help }
func (f *Flag[T]) Type() Type            { return f.codec.typ }
func (f *Flag[T]) DefaultString() string { return f.def }
func (f *Flag[T]) String() string        { return f.codec.format(f.value) }

// Value returns the current value.
func (f *Flag[T]) Value() T {
	return f.value
}

// SetValue overwrites the current value.
func (f *Flag[T]) SetValue(v T) {
	f.value = v
}

func (f *Flag[T]) SetString(text string) error {
	v, err := f.codec.parse(text)
	if err != nil {
		return &ValueError{
			Flag:  f.name,
			Type:  f.codec.typ,
			Value: text,
			Err:   err,
		}
	}
	f.value = v
	return nil
}
