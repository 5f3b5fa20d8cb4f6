// FILE: lixenwraith/hparams/format.go
package hparams

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a declaration document dialect
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// RawEntry is one top-level key of a declaration document with its
// undecoded fields
type RawEntry struct {
	Name   string
	Fields map[string]any
}

// Parser turns a declaration document into its top-level entries, in document order.
// Each supported dialect has one implementation.
type Parser interface {
	Parse(data []byte) ([]RawEntry, error)
}

// ParserFunc adapts a function to the Parser interface
type ParserFunc func(data []byte) ([]RawEntry, error)

func (f ParserFunc) Parse(data []byte) ([]RawEntry, error) {
	return f(data)
}

// ParserFor returns the parser of a format
func ParserFor(format Format) (Parser, error) {
	switch format {
	case FormatYAML:
		return ParserFunc(parseYAML), nil
	case FormatJSON:
		return ParserFunc(parseJSON), nil
	case FormatTOML:
		return ParserFunc(parseTOML), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// DetectFormat determines the format from the file extension
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml", ".tml":
		return FormatTOML, true
	}
	return "", false
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) (Format, bool) {
	// Try JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON, true
	}

	// TOML before YAML: most TOML tables do not parse as YAML, but a flat YAML
	// mapping rarely parses as TOML
	var tomlTest map[string]any
	if _, err := toml.Decode(string(data), &tomlTest); err == nil {
		return FormatTOML, true
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML, true
	}

	return "", false
}

// parseYAML walks the document node so mapping order survives decoding
func parseYAML(data []byte) ([]RawEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil // Empty document
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML document root must be a mapping, got %s", yamlKind(doc.Kind))
	}

	entries := make([]RawEntry, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		fields := make(map[string]any)
		if err := val.Decode(&fields); err != nil {
			return nil, fmt.Errorf("entry %q (line %d): %w", key.Value, val.Line, err)
		}
		entries = append(entries, RawEntry{Name: key.Value, Fields: fields})
	}
	return entries, nil
}

func yamlKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

// parseJSON reads the top-level object token by token to keep key order
func parseJSON(data []byte) ([]RawEntry, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Preserve number precision

	tok, err := decoder.Token()
	if errors.Is(err, io.EOF) {
		return nil, nil // Empty document
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("JSON document root must be an object, got %v", tok)
	}

	var entries []RawEntry
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected JSON token %v", tok)
		}
		fields := make(map[string]any)
		if err := decoder.Decode(&fields); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		entries = append(entries, RawEntry{Name: key, Fields: fields})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return entries, nil
}

// parseTOML uses the decoder metadata for key order, maps lose it
func parseTOML(data []byte) ([]RawEntry, error) {
	doc := make(map[string]any)
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	var entries []RawEntry
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		name := key[0]
		if seen[name] {
			continue
		}
		seen[name] = true

		fields, ok := doc[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("entry %q must be a table, got %T", name, doc[name])
		}
		entries = append(entries, RawEntry{Name: name, Fields: fields})
	}
	return entries, nil
}
