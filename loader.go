// FILE: lixenwraith/hparams/loader.go
package hparams

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxFileSize bounds the size of a declaration file read by FromFile
const MaxFileSize = 10 << 20

// FromFile reads parameter declarations from a YAML, JSON or TOML document.
// The dialect is chosen by extension, falling back to content detection.
// Top-level keys become entry names in document order. Any failure,
// including a missing or unreadable file, is a *FileError matching
// ErrMalformedFile and the underlying cause (os.ErrNotExist for a missing file).
func FromFile(path string) (*Configs, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	format, ok := DetectFormat(path)
	if !ok {
		if format, ok = detectFormatFromContent(data); !ok {
			return nil, &FileError{Path: path, Err: fmt.Errorf("%w: cannot determine format", ErrUnsupportedFormat)}
		}
	}

	parser, err := ParserFor(format)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return decodeDocument(path, data, parser)
}

// FromFileWith reads parameter declarations using an explicit parser
func FromFileWith(path string, parser Parser) (*Configs, error) {
	if parser == nil {
		return nil, fmt.Errorf("nil parser for %s", path)
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decodeDocument(path, data, parser)
}

// Decode reads parameter declarations from an in-memory document
func Decode(data []byte, format Format) (*Configs, error) {
	parser, err := ParserFor(format)
	if err != nil {
		return nil, err
	}
	return decodeDocument("<"+string(format)+">", data, parser)
}

// readFile reads a declaration file with size limit
func readFile(path string) ([]byte, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FileError{Path: path, Err: fmt.Errorf("not found: %w", err)}
		}
		return nil, &FileError{Path: path, Err: fmt.Errorf("stat failed: %w", err)}
	}
	if fileInfo.IsDir() {
		return nil, &FileError{Path: path, Err: errors.New("is a directory")}
	}
	if fileInfo.Size() > MaxFileSize {
		return nil, &FileError{Path: path, Err: fmt.Errorf("exceeds maximum size %d bytes", MaxFileSize)}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: fmt.Errorf("open failed: %w", err)}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize))
	if err != nil {
		return nil, &FileError{Path: path, Err: fmt.Errorf("read failed: %w", err)}
	}
	return data, nil
}

// decodeDocument builds a Configs from a parsed document. The result is
// only returned when every entry decodes.
func decodeDocument(path string, data []byte, parser Parser) (*Configs, error) {
	entries, err := parser.Parse(data)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	out := New()
	for _, raw := range entries {
		if out.Has(raw.Name) {
			return nil, &FileError{Path: path, Entry: raw.Name, Err: errors.New("duplicate entry")}
		}
		cfg, err := decodeEntry(raw)
		if err != nil {
			return nil, &FileError{Path: path, Entry: raw.Name, Err: err}
		}
		out.insert(cfg)
	}
	return out, nil
}
