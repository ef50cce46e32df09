// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"fmt"
	"strings"
)

// Outcome describes how a parse finished.
type Outcome int

const (
	// Matched means every flag was known and no special flag was set.
	Matched Outcome = iota
	// HelpRequested means the help flag was true after the scan.
	HelpRequested
	// VersionRequested means the version flag was true after the scan
	// and help was not.
	VersionRequested
	// UnknownFlag means scanning stopped at a flag missing from the registry.
	UnknownFlag
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case HelpRequested:
		return "help requested"
	case VersionRequested:
		return "version requested"
	case UnknownFlag:
		return "unknown flag"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the output of Parse.
type Result struct {
	// Args holds the tokens that were neither flags nor flag values, in
	// their original order. Args[0] is always the program name.
	Args    []string
	Outcome Outcome
	// Unknown is the offending flag name when Outcome is UnknownFlag.
	Unknown string
}

// Parse matches args against the registry and stores flag values as it goes.
// args[0] is the program name and is never treated as a flag.
//
// A token starting with "-" is a flag. If it has no "=" and the next token
// does not start with "-", the next token is its value. Unknown flags stop the
// scan and return an *UnknownFlagError; values that fail to convert return a
// *ValueError. The help and version flags are examined once, after the scan.
func (r *Registry) Parse(args []string) (*Result, error) {
	res := &Result{}
	if len(args) == 0 {
		return res, nil
	}
	res.Args = make([]string, 1, len(args))
	res.Args[0] = args[0]

	for i := 1; i < len(args); {
		key, value, used, ok := splitFlag(args[i:])
		if !ok {
			res.Args = append(res.Args, args[i])
			i++
			continue
		}
		i += used

		d, found := r.Lookup(key)
		if !found {
			res.Outcome = UnknownFlag
			res.Unknown = key
			return res, &UnknownFlagError{Flag: key}
		}
		if err := d.SetString(value); err != nil {
			return res, err
		}
	}

	switch {
	case r.isSet(HelpFlag):
		res.Outcome = HelpRequested
	case r.isSet(VersionFlag):
		res.Outcome = VersionRequested
	}
	return res, nil
}

// splitFlag parses the flag at args[0], if it is one, and reports how many
// tokens it used. It handles -name, --name, -name=value, --name=value,
// -name value and --name value.
func splitFlag(args []string) (key, value string, used int, ok bool) {
	arg := args[0]
	if !strings.HasPrefix(arg, "-") {
		return "", "", 1, false
	}
	arg = arg[1:]
	arg = strings.TrimPrefix(arg, "-")

	if k, v, found := strings.Cut(arg, "="); found {
		return k, v, 1, true
	}

	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		return arg, args[1], 2, true
	}
	return arg, "", 1, true
}
