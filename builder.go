// File: lixenwraith/hparams/builder.go
package hparams

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// ValidatorFunc defines the signature for a function that can validate a Configs instance.
// It receives the fully assembled collection and should return an error if validation fails.
type ValidatorFunc func(c *Configs) error

// source produces one part of the collection
type source func() (*Configs, error)

// Builder provides a fluent interface for assembling declarations from
// several sources. Sources are merged left to right in the order they were
// added, later declarations overwriting earlier ones.
type Builder struct {
	sources    []source
	logger     *zerolog.Logger
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new declaration builder
func NewBuilder() *Builder {
	return &Builder{
		validators: make([]ValidatorFunc, 0),
	}
}

// WithConfigs adds existing collections
func (b *Builder) WithConfigs(cs ...*Configs) *Builder {
	for _, c := range cs {
		c := c
		b.sources = append(b.sources, func() (*Configs, error) { return c.Clone(), nil })
	}
	return b
}

// WithStruct adds the fields of a tagged struct, see FromStruct
func (b *Builder) WithStruct(v any) *Builder {
	b.sources = append(b.sources, func() (*Configs, error) { return FromStruct(v) })
	return b
}

// WithFlagSet adds the flags defined on fs, see FromFlagSet
func (b *Builder) WithFlagSet(fs *pflag.FlagSet) *Builder {
	b.sources = append(b.sources, func() (*Configs, error) { return FromFlagSet(fs) })
	return b
}

// WithFile adds the declarations of a YAML, JSON or TOML file
func (b *Builder) WithFile(path string) *Builder {
	if path == "" {
		b.err = fmt.Errorf("empty file path")
		return b
	}
	b.sources = append(b.sources, func() (*Configs, error) { return FromFile(path) })
	return b
}

// WithDiscoveredFile adds the first declaration file found by DiscoverFile.
// Finding no file is not an error.
func (b *Builder) WithDiscoveredFile(opts DiscoveryOptions) *Builder {
	if path, ok := DiscoverFile(opts); ok {
		return b.WithFile(path)
	}
	return b
}

// WithLogger sets the logger of the built collection
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = &l
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Configs instance from all sources
func (b *Builder) Build() (*Configs, error) {
	if b.err != nil {
		return nil, b.err
	}

	out := New()
	if b.logger != nil {
		out.SetLogger(*b.logger)
	}

	for i, src := range b.sources {
		part, err := src()
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		out.Merge(part)
	}

	// Run validators
	for _, validator := range b.validators {
		if err := validator(out); err != nil {
			return nil, fmt.Errorf("declaration validation failed: %w", err)
		}
	}

	return out, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Configs {
	c, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("hparams build failed: %v", err))
	}
	return c
}

// RequireNames returns a validator failing when any of names is not declared
func RequireNames(names ...string) ValidatorFunc {
	return func(c *Configs) error {
		var missing []string
		for _, name := range names {
			if !c.Has(name) {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required parameters: %v", missing)
		}
		return nil
	}
}
