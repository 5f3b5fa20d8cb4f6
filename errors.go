// FILE: lixenwraith/hparams/errors.go
package hparams

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStrategy is returned when a strategy tag is not one of the recognized values
	ErrInvalidStrategy = errors.New("invalid strategy")
	// ErrMissingChoices is returned when a searchable strategy has no choices
	ErrMissingChoices = errors.New("missing choices")
	// ErrMalformedFile is returned when a declaration file cannot be turned into Configs
	ErrMalformedFile = errors.New("malformed config file")

	ErrInvalidName       = errors.New("invalid parameter name")
	ErrUnknownType       = errors.New("unknown parameter type")
	ErrInvalidBounds     = errors.New("invalid search bounds")
	ErrInvalidChoice     = errors.New("value not among choices")
	ErrFlagRedefined     = errors.New("flag already defined")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// FileError reports a failure to read a declaration file.
// It matches ErrMalformedFile as well as the underlying cause.
type FileError struct {
	Path  string
	Entry string // Top-level key being decoded, empty for document-level failures
	Err   error
}

func (e *FileError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("%s: %s: entry %q: %v", ErrMalformedFile, e.Path, e.Entry, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrMalformedFile, e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{ErrMalformedFile, e.Err}
}
