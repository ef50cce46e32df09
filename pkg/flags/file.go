// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile reads flag values from a TOML (.toml) or YAML (.yaml, .yml) file
// and applies them in sorted name order. The document must be a flat table of
// flag names to scalar values. YAML scalars are applied as written, so
// "tag: 1.10" sets a string flag to "1.10".
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read flag file: %w", err)
	}
	var values map[string]string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		values, err = decodeTOML(data)
	case ".yaml", ".yml":
		values, err = decodeYAML(data)
	default:
		return fmt.Errorf("unsupported flag file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to decode flag file %s: %w", path, err)
	}
	if err := r.apply(values); err != nil {
		return fmt.Errorf("flag file %s: %w", path, err)
	}
	return nil
}

func (r *Registry) apply(values map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		d, ok := r.Lookup(name)
		if !ok {
			return &UnknownFlagError{Flag: name}
		}
		if err := d.SetString(values[name]); err != nil {
			return err
		}
	}
	return nil
}

func decodeTOML(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(doc))
	for name, v := range doc {
		text, err := scalarText(v)
		if err != nil {
			return nil, fmt.Errorf("flag --%s: %w", name, err)
		}
		values[name] = text
	}
	return values, nil
}

func decodeYAML(data []byte) (map[string]string, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(doc))
	for name, node := range doc {
		n := &node
		if n.Kind == yaml.AliasNode && n.Alias != nil {
			n = n.Alias
		}
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("flag --%s: expected a scalar value", name)
		}
		if n.Tag == "!!null" {
			values[name] = ""
			continue
		}
		values[name] = n.Value
	}
	return values, nil
}

// scalarText renders a decoded TOML scalar as flag text.
func scalarText(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}
