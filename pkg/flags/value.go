// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"fmt"
	"strconv"
)

// Type is the value type of a flag. It is fixed when the flag is created.
type Type int

const (
	TypeString Type = iota
	TypeBool
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeDouble
	TypeFloat
)

var typeNames = [...]string{
	TypeString: "string",
	TypeBool:   "bool",
	TypeInt32:  "int32",
	TypeUint32: "uint32",
	TypeInt64:  "int64",
	TypeUint64: "uint64",
	TypeDouble: "double",
	TypeFloat:  "float",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Value is the set of Go types a Flag can hold.
type Value interface {
	string | bool | int32 | uint32 | int64 | uint64 | float64 | float32
}

// codec converts between a flag's text form and its typed value.
type codec[T Value] struct {
	typ    Type
	parse  func(string) (T, error)
	format func(T) string
}

var (
	stringCodec = codec[string]{
		typ:    TypeString,
		parse:  func(s string) (string, error) { return s, nil },
		format: func(v string) string { return `"` + v + `"` },
	}
	boolCodec = codec[bool]{
		typ:    TypeBool,
		parse:  parseBool,
		format: strconv.FormatBool,
	}
	int32Codec = codec[int32]{
		typ: TypeInt32,
		parse: func(s string) (int32, error) {
			v, err := strconv.ParseInt(s, 10, 32)
			return int32(v), err
		},
		format: func(v int32) string { return strconv.FormatInt(int64(v), 10) },
	}
	uint32Codec = codec[uint32]{
		typ: TypeUint32,
		parse: func(s string) (uint32, error) {
			v, err := strconv.ParseUint(s, 10, 32)
			return uint32(v), err
		},
		format: func(v uint32) string { return strconv.FormatUint(uint64(v), 10) },
	}
	int64Codec = codec[int64]{
		typ:    TypeInt64,
		parse:  func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
		format: func(v int64) string { return strconv.FormatInt(v, 10) },
	}
	uint64Codec = codec[uint64]{
		typ:    TypeUint64,
		parse:  func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) },
		format: func(v uint64) string { return strconv.FormatUint(v, 10) },
	}
	doubleCodec = codec[float64]{
		typ:    TypeDouble,
		parse:  func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
		format: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	}
	floatCodec = codec[float32]{
		typ: TypeFloat,
		parse: func(s string) (float32, error) {
			v, err := strconv.ParseFloat(s, 32)
			return float32(v), err
		},
		format: func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) },
	}
)

// parseBool treats the empty string as true so that a bare "--flag" enables
// a boolean flag. Anything else must be a strconv.ParseBool literal.
func parseBool(s string) (bool, error) {
	if s == "" {
		return true, nil
	}
	return strconv.ParseBool(s)
}

func codecFor[T Value]() codec[T] {
	var zero T
	var c any
	switch any(zero).(type) {
	case string:
		c = stringCodec
	case bool:
		c = boolCodec
	case int32:
		c = int32Codec
	case uint32:
		c = uint32Codec
	case int64:
		c = int64Codec
	case uint64:
		c = uint64Codec
	case float64:
		c = doubleCodec
	case float32:
		c = floatCodec
	}
	return c.(codec[T])
}
