// FILE: lixenwraith/hparams/configs.go
package hparams

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Configs is an ordered, name-keyed collection of Config declarations.
// Insertion order is the iteration and export order. Re-adding a name
// replaces the entry in place and logs a warning.
//
// A Configs is not safe for concurrent use; callers sharing one must serialize access.
type Configs struct {
	names   []string
	entries map[string]Config
	logger  *zerolog.Logger
}

// New creates an empty collection
func New() *Configs {
	return &Configs{
		entries: make(map[string]Config),
	}
}

// SetLogger replaces the logger used for overwrite warnings
func (c *Configs) SetLogger(l zerolog.Logger) *Configs {
	c.logger = &l
	return c
}

func (c *Configs) log() *zerolog.Logger {
	if c.logger == nil {
		l := defaultLogger()
		c.logger = &l
	}
	return c.logger
}

// Add declares a parameter. On a duplicate name the previous declaration is
// replaced, keeping its position, and a warning is logged.
// Nothing is added when validation fails.
func (c *Configs) Add(name string, typ Type, opts ...Option) error {
	cfg, err := NewConfig(name, typ, opts...)
	if err != nil {
		return err
	}
	c.insert(cfg)
	return nil
}

// MustAdd is like Add but panics on error. It returns the collection for chaining.
func (c *Configs) MustAdd(name string, typ Type, opts ...Option) *Configs {
	if err := c.Add(name, typ, opts...); err != nil {
		panic(fmt.Sprintf("hparams: add %q failed: %v", name, err))
	}
	return c
}

// Put inserts an already constructed Config after validating it
func (c *Configs) Put(cfg Config) error {
	if cfg.Strategy == "" {
		cfg.Strategy = Constant
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.insert(cfg.clone())
	return nil
}

// insert stores a validated entry with overwrite semantics
func (c *Configs) insert(cfg Config) {
	if c.entries == nil {
		c.entries = make(map[string]Config)
	}
	if prev, exists := c.entries[cfg.Name]; exists {
		c.log().Warn().
			Str("name", cfg.Name).
			Stringer("previous", prev).
			Stringer("current", cfg).
			Msg("overwriting existing parameter declaration")
	} else {
		c.names = append(c.names, cfg.Name)
	}
	c.entries[cfg.Name] = cfg
}

// Names returns all entry names in insertion order
func (c *Configs) Names() []string {
	if c == nil {
		return []string{}
	}
	return append([]string{}, c.names...)
}

// Values returns a copy of the name to Config mapping
func (c *Configs) Values() map[string]Config {
	out := make(map[string]Config, c.Len())
	if c == nil {
		return out
	}
	for name, cfg := range c.entries {
		out[name] = cfg.clone()
	}
	return out
}

// All returns the entries in insertion order
func (c *Configs) All() []Config {
	if c == nil {
		return nil
	}
	out := make([]Config, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.entries[name].clone())
	}
	return out
}

// Get looks up an entry by name
func (c *Configs) Get(name string) (Config, bool) {
	if c == nil {
		return Config{}, false
	}
	cfg, ok := c.entries[name]
	if !ok {
		return Config{}, false
	}
	return cfg.clone(), true
}

// Has reports whether name is declared
func (c *Configs) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.entries[name]
	return ok
}

// Len returns the number of entries
func (c *Configs) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Clone returns an independent copy. Cloning nil yields an empty collection.
func (c *Configs) Clone() *Configs {
	out := New()
	if c == nil {
		return out
	}
	out.logger = c.logger
	out.names = append(out.names, c.names...)
	for name, cfg := range c.entries {
		out.entries[name] = cfg.clone()
	}
	return out
}

// Union returns a new collection with the entries of c followed by those of
// other. On a name collision the entry of other wins.
// A nil receiver behaves as an empty collection.
func (c *Configs) Union(other *Configs) *Configs {
	out := c.Clone()
	if c == nil && other != nil {
		out.logger = other.logger
	}
	return out.Merge(other)
}

// Merge adds the entries of other to c in place and returns c.
// On a name collision the entry of other wins.
func (c *Configs) Merge(other *Configs) *Configs {
	if c == nil {
		return other.Clone()
	}
	if other == nil {
		return c
	}
	for _, name := range other.names {
		c.insert(other.entries[name].clone())
	}
	return c
}

// Difference returns a new collection holding the entries of c whose name is
// not declared in other. Order follows c; entries are matched by name only.
func (c *Configs) Difference(other *Configs) *Configs {
	out := New()
	if c == nil {
		return out
	}
	out.logger = c.logger
	for _, name := range c.names {
		if other.Has(name) {
			continue
		}
		out.names = append(out.names, name)
		out.entries[name] = c.entries[name].clone()
	}
	return out
}

// Sum combines collections left to right starting from an empty accumulator.
// Nil elements count as empty collections.
func Sum(cs ...*Configs) *Configs {
	acc := New()
	for _, c := range cs {
		if c == nil {
			continue
		}
		if acc.logger == nil {
			acc.logger = c.logger
		}
		acc.Merge(c)
	}
	return acc
}

// DefaultValues returns each entry's default in insertion order.
// Entries without a default map to nil.
func (c *Configs) DefaultValues() Namespace {
	ns := NewNamespace()
	if c == nil {
		return ns
	}
	for _, name := range c.names {
		ns.Set(name, c.entries[name].Default)
	}
	return ns
}

// Filter returns a new collection with the entries for which keep returns true
func (c *Configs) Filter(keep func(Config) bool) *Configs {
	out := New()
	if c == nil {
		return out
	}
	out.logger = c.logger
	for _, name := range c.names {
		cfg := c.entries[name]
		if !keep(cfg) {
			continue
		}
		out.names = append(out.names, name)
		out.entries[name] = cfg.clone()
	}
	return out
}

// String renders the collection for debugging
func (c *Configs) String() string {
	var b strings.Builder
	b.WriteString("Configs[")
	for i, cfg := range c.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cfg.String())
	}
	b.WriteString("]")
	return b.String()
}
