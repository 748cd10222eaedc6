package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatOf picks the format from a file extension (.yaml, .yml, .json).
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported config file extension: %q", ext)
	}
}

// FromFile loads a document, choosing the format by extension.
func FromFile(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}

// Load decodes a single document from r.
// An empty document yields an empty Config.
func Load(r io.Reader, format Format) (Config, error) {
	var m map[string]any

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		// keep integers exact; Int and Float accept json.Number
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil && err != io.EOF {
			return Config{}, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return New(m), nil
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	return Load(bytes.NewReader(data), FormatYAML)
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	return Load(bytes.NewReader(data), FormatJSON)
}
