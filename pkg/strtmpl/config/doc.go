/*
Package config provides typed extraction from decoded YAML/JSON documents.

# Overview

config wraps a map[string]any and provides typed accessor methods that
return a default when a key is missing or holds the wrong type. The
definition package uses it to read slot attributes without a chain of type
assertions.

# Basic Usage

	cfg := config.New(map[string]any{
	    "kind":     "enum",
	    "values":   []any{"low", "mid", "high"},
	    "fallback": "unknown",
	})

	kind := cfg.String("kind", "str")            // "enum"
	values := cfg.StringSlice("values", nil)     // ["low" "mid" "high"]
	fallback := cfg.String("fallback", "")       // "unknown"
	sep := cfg.String("separator", "\n")         // "\n"

# Type Coercion

Numeric accessors handle the types produced by the YAML and JSON decoders:
  - Int accepts int, int64, whole float64 values and integer json.Number
  - Float accepts float64, int, int64 and json.Number
  - Number reports whether a value is numeric at all

Collection accessors convert decoded []any and map[string]any values:
  - StringSlice accepts []string and []any of strings
  - StringMap accepts map[string]string and map[string]any of strings
  - Sub returns a nested Config for a map value
  - Slice returns a []any value, wrapping a single map in a slice

# File Loading

	cfg, err := config.FromFile("greeting.yaml")
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)
	cfg, err = config.Load(os.Stdin, config.FormatJSON)

JSON numbers are decoded as json.Number so large integers stay exact.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
