// File: lixenwraith/hparams/io.go
package hparams

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// entryDoc is the serialized form of one declaration, field order as written
type entryDoc struct {
	Type        string `yaml:"type" json:"type"`
	Alias       string `yaml:"alias,omitempty" json:"alias,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Choices     []any  `yaml:"choices,omitempty" json:"choices,omitempty"`
	Strategy    string `yaml:"strategy" json:"strategy"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

func docOf(cfg Config) entryDoc {
	return entryDoc{
		Type:        cfg.Type.Name(),
		Alias:       cfg.Alias,
		Default:     cfg.Default,
		Choices:     cfg.Choices,
		Strategy:    string(cfg.Strategy),
		Description: cfg.Description,
	}
}

// tableOf builds the TOML table of an entry; nil values have no TOML form
func tableOf(cfg Config) map[string]any {
	table := map[string]any{
		"type":     cfg.Type.Name(),
		"strategy": string(cfg.Strategy),
	}
	if cfg.Alias != "" {
		table["alias"] = cfg.Alias
	}
	if cfg.Default != nil {
		table["default"] = cfg.Default
	}
	if len(cfg.Choices) > 0 {
		table["choices"] = cfg.Choices
	}
	if cfg.Description != "" {
		table["description"] = cfg.Description
	}
	return table
}

// Encode writes the declarations as a document of the given format, in
// insertion order. FromFile and Decode read it back.
func (c *Configs) Encode(format Format) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatYAML:
		root := &yaml.Node{Kind: yaml.MappingNode}
		for _, cfg := range c.All() {
			var val yaml.Node
			if err := val.Encode(docOf(cfg)); err != nil {
				return nil, fmt.Errorf("failed to encode %q as YAML: %w", cfg.Name, err)
			}
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cfg.Name},
				&val,
			)
		}
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(root); err != nil {
			return nil, fmt.Errorf("failed to marshal declarations to YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal declarations to YAML: %w", err)
		}

	case FormatJSON:
		buf.WriteString("{")
		for i, cfg := range c.All() {
			if i > 0 {
				buf.WriteString(",")
			}
			key, _ := json.Marshal(cfg.Name)
			val, err := json.MarshalIndent(docOf(cfg), "  ", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to encode %q as JSON: %w", cfg.Name, err)
			}
			buf.WriteString("\n  ")
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(val)
		}
		if c.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString("}\n")

	case FormatTOML:
		// One table per encode call keeps entry order
		encoder := toml.NewEncoder(&buf)
		for _, cfg := range c.All() {
			if err := encoder.Encode(map[string]any{cfg.Name: tableOf(cfg)}); err != nil {
				return nil, fmt.Errorf("failed to encode %q as TOML: %w", cfg.Name, err)
			}
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// Save writes the declarations to path atomically, in the format given by
// the file extension.
func (c *Configs) Save(path string) error {
	format, ok := DetectFormat(path)
	if !ok {
		return fmt.Errorf("%w: cannot determine format of '%s'", ErrUnsupportedFormat, path)
	}
	return c.SaveAs(path, format)
}

// SaveAs writes the declarations to path atomically in the given format
func (c *Configs) SaveAs(path string, format Format) error {
	data, err := c.Encode(format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	// Ensure the directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory '%s': %w", dir, err)
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", path, err)
	}
	return nil
}
