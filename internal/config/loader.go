package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses an options file from fs.
// Files ending in .json are compacted first so tab indentation does not
// trip the YAML scanner.
func LoadFile(fs afero.Fs, path string) (*Options, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}

	return Parse(data)
}

// ParseJSON parses JSON options.
func ParseJSON(data []byte) (*Options, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to parse options JSON: %w", err)
	}

	return Parse(buf.Bytes())
}

// Parse parses YAML data into Options.
func Parse(data []byte) (*Options, error) {
	var opts Options

	err := yaml.Unmarshal(data, &opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse options YAML: %w", err)
	}

	applyDefaults(&opts)

	return &opts, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(o *Options) {
	if o.Origin == "" {
		o.Origin = DefaultOrigin
	}

	if o.Entry == "" {
		o.Entry = DefaultEntry
	}

	if o.Generate.AppWxss == "" {
		o.Generate.AppWxss = DefaultAppWxss
	}
}
