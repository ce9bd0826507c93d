package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadValue decodes path as the data it names: YAML for .yaml/.yml, JSON
// otherwise. The decoded shape uses map[string]any/[]any, matching what
// the spec package's collection and keys specs expect. JSON numbers that
// fit in an int decode as int rather than float64, since the builtin
// specs (§6.3) and most user predicates test for Go's native int.
func loadValue(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("specgo: %w", err)
	}
	var v any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("specgo: parsing %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("specgo: parsing %s: %w", path, err)
		}
		v = narrowNumbers(v)
	}
	return v, nil
}

// narrowNumbers walks v, replacing each json.Number with an int when it
// parses as one and a float64 otherwise.
func narrowNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n)
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, e := range x {
			x[k] = narrowNumbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = narrowNumbers(e)
		}
		return x
	default:
		return v
	}
}
