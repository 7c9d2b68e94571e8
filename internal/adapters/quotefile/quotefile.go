// Package quotefile reads and writes quote inputs as JSON or YAML files.
package quotefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

// Load reads a quote state. Settings missing from the file keep their defaults.
func Load(path string) (quote.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return quote.State{}, fmt.Errorf("failed to read quote file: %w", err)
	}
	return Decode(filepath.Ext(path), data)
}

// Decode parses JSON, or YAML when ext is .yaml or .yml
func Decode(ext string, data []byte) (quote.State, error) {
	if isYAML(ext) {
		converted, err := yamlToJSON(data)
		if err != nil {
			return quote.State{}, err
		}
		data = converted
	}

	state := quote.State{Settings: quote.DefaultSettings()}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&state); err != nil {
		return quote.State{}, fmt.Errorf("failed to parse quote file: %w", err)
	}
	return state, nil
}

// Save writes a quote state, as YAML when the path says so
func Save(path string, state quote.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	if isYAML(filepath.Ext(path)) {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to encode quote: %w", err)
		}
		if data, err = yaml.Marshal(doc); err != nil {
			return fmt.Errorf("failed to encode quote: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write quote file: %w", err)
	}
	return nil
}

func isYAML(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".yaml" || ext == ".yml"
}

// yamlToJSON re-encodes a YAML document so the json tags on the domain types apply
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse quote file: %w", err)
	}
	if doc == nil {
		return []byte("{}"), nil
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert quote file: %w", err)
	}
	return out, nil
}
