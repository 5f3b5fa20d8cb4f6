// FILE: lixenwraith/hparams/config.go
package hparams

import (
	"fmt"
	"reflect"
	"strings"
)

// Config declares a single named, typed parameter.
// Values are treated as immutable once constructed; use NewConfig to build one.
type Config struct {
	Name        string
	Alias       string // Optional short name, only used on the flag surface
	Type        Type
	Default     any // nil means no default
	Choices     []any
	Strategy    Strategy
	Description string
}

// Option sets an optional field of a Config during construction
type Option func(*Config)

// WithDefault sets the value used when nothing else is supplied
func WithDefault(v any) Option {
	return func(c *Config) { c.Default = v }
}

// WithAlias sets the short command-line name
func WithAlias(alias string) Option {
	return func(c *Config) { c.Alias = alias }
}

// WithChoices sets the candidate values. Searchable strategies require at least one.
func WithChoices(choices ...any) Option {
	return func(c *Config) {
		if choices == nil {
			c.Choices = nil
			return
		}
		c.Choices = append([]any(nil), choices...)
	}
}

// WithStrategy sets the search strategy, Constant when omitted
func WithStrategy(s Strategy) Option {
	return func(c *Config) { c.Strategy = s }
}

// WithDescription sets the help text
func WithDescription(desc string) Option {
	return func(c *Config) { c.Description = desc }
}

// NewConfig builds and validates a Config
func NewConfig(name string, typ Type, opts ...Option) (Config, error) {
	c := Config{
		Name:     name,
		Type:     typ,
		Strategy: Constant,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.Strategy == "" {
		c.Strategy = Constant
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the invariants of a Config
func (c Config) Validate() error {
	if !isValidName(c.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, c.Name)
	}
	if c.Alias != "" && !isValidName(c.Alias) {
		return fmt.Errorf("%w: alias %q of %q", ErrInvalidName, c.Alias, c.Name)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: %v for %q", ErrUnknownType, c.Type, c.Name)
	}
	if !c.Strategy.Valid() {
		return fmt.Errorf("%w: %q for %q (expected one of %v)", ErrInvalidStrategy, string(c.Strategy), c.Name, Strategies)
	}
	if c.Strategy.Searchable() && len(c.Choices) == 0 {
		return fmt.Errorf("%w: strategy %q of %q needs at least one choice", ErrMissingChoices, c.Strategy, c.Name)
	}
	if c.Strategy.Ranged() {
		lo, hi, err := bounds(c.Choices)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidBounds, c.Name, err)
		}
		if c.Strategy == LogUniform && lo <= 0 {
			return fmt.Errorf("%w: %q: loguniform bounds must be positive, got [%v, %v]", ErrInvalidBounds, c.Name, lo, hi)
		}
	}
	return nil
}

// Equal reports whether every field of c and other matches
func (c Config) Equal(other Config) bool {
	return c.Name == other.Name &&
		c.Alias == other.Alias &&
		c.Type == other.Type &&
		c.Strategy == other.Strategy &&
		c.Description == other.Description &&
		reflect.DeepEqual(c.Default, other.Default) &&
		reflect.DeepEqual(c.Choices, other.Choices)
}

// HasDefault reports whether a default value was declared
func (c Config) HasDefault() bool {
	return c.Default != nil
}

// String renders the declaration for debugging
func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Config(name=%s", c.Name)
	if c.Alias != "" {
		fmt.Fprintf(&b, ", alias=%s", c.Alias)
	}
	fmt.Fprintf(&b, ", type=%s, default=%v, strategy=%s", c.Type.Name(), c.Default, c.Strategy)
	if len(c.Choices) > 0 {
		fmt.Fprintf(&b, ", choices=%v", c.Choices)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, ", description=%q", c.Description)
	}
	b.WriteString(")")
	return b.String()
}

// clone returns a copy that shares no slices with c
func (c Config) clone() Config {
	if c.Choices != nil {
		c.Choices = append([]any(nil), c.Choices...)
	}
	return c
}

// bounds returns the numeric minimum and maximum of choices
func bounds(choices []any) (lo, hi float64, err error) {
	if len(choices) == 0 {
		return 0, 0, fmt.Errorf("no choices")
	}
	for i, ch := range choices {
		f, ok := toFloat(ch)
		if !ok {
			return 0, 0, fmt.Errorf("choice %v (%T) is not numeric", ch, ch)
		}
		if i == 0 || f < lo {
			lo = f
		}
		if i == 0 || f > hi {
			hi = f
		}
	}
	return lo, hi, nil
}
