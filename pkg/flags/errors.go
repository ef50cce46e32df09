// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFlag matches any *UnknownFlagError.
	ErrUnknownFlag = errors.New("unknown flag")

	// ErrInvalidValue matches any *ValueError.
	ErrInvalidValue = errors.New("invalid flag value")
)

// UnknownFlagError is returned when a flag name is not in the registry.
type UnknownFlagError struct {
	Flag string // name without leading dashes
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown flag: --%s", e.Flag)
}

func (e *UnknownFlagError) Is(target error) bool {
	return target == ErrUnknownFlag
}

// ValueError is returned when text cannot be converted to a flag's type.
// Err holds the underlying strconv error.
type ValueError struct {
	Flag  string
	Type  Type
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q for flag --%s", e.Type, e.Value, e.Flag)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
