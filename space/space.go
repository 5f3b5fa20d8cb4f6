// FILE: lixenwraith/hparams/space/space.go

// Package space describes hyperparameter search spaces: the sampling
// primitives a search backend understands and an ordered mapping of
// parameter names to those primitives.
package space

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"gopkg.in/yaml.v3"
)

// Kinds of sampling primitives
const (
	KindChoice     = "choice"
	KindUniform    = "uniform"
	KindLogUniform = "loguniform"
)

// Domain is a sampling primitive for one parameter
type Domain interface {
	// Kind names the primitive: choice, uniform or loguniform
	Kind() string
	// Sample draws one value using r
	Sample(r *rand.Rand) any
}

// Categorical picks uniformly among a fixed list of values
type Categorical struct {
	Categories []any `json:"categories" yaml:"categories"`
}

// Choice returns a domain picking uniformly from categories
func Choice(categories []any) Categorical {
	return Categorical{Categories: append([]any(nil), categories...)}
}

func (c Categorical) Kind() string { return KindChoice }

func (c Categorical) Sample(r *rand.Rand) any {
	if len(c.Categories) == 0 {
		return nil
	}
	return c.Categories[r.Intn(len(c.Categories))]
}

// Float samples a real value in [Lower, Upper), optionally in log space
type Float struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Log   bool    `json:"-" yaml:"-"`
}

// Uniform returns a domain sampling uniformly from [lower, upper)
func Uniform(lower, upper float64) Float {
	return Float{Lower: lower, Upper: upper}
}

// LogUniform returns a domain sampling log-uniformly from [lower, upper).
// Both bounds must be positive.
func LogUniform(lower, upper float64) Float {
	return Float{Lower: lower, Upper: upper, Log: true}
}

func (f Float) Kind() string {
	if f.Log {
		return KindLogUniform
	}
	return KindUniform
}

func (f Float) Sample(r *rand.Rand) any {
	if f.Log {
		lo, hi := math.Log(f.Lower), math.Log(f.Upper)
		return math.Exp(lo + r.Float64()*(hi-lo))
	}
	return f.Lower + r.Float64()*(f.Upper-f.Lower)
}

// Space is an ordered mapping of parameter names to domains
type Space struct {
	names   []string
	domains map[string]Domain
}

// New creates an empty space
func New() *Space {
	return &Space{domains: make(map[string]Domain)}
}

// Add sets the domain of name, keeping the position of an existing name
func (s *Space) Add(name string, d Domain) *Space {
	if s.domains == nil {
		s.domains = make(map[string]Domain)
	}
	if _, exists := s.domains[name]; !exists {
		s.names = append(s.names, name)
	}
	s.domains[name] = d
	return s
}

// Get returns the domain of name
func (s *Space) Get(name string) (Domain, bool) {
	d, ok := s.domains[name]
	return d, ok
}

// Has reports whether name belongs to the space
func (s *Space) Has(name string) bool {
	_, ok := s.domains[name]
	return ok
}

// Names returns the parameter names in insertion order
func (s *Space) Names() []string {
	return append([]string{}, s.names...)
}

// Len returns the number of parameters
func (s *Space) Len() int {
	return len(s.names)
}

// Domains returns a copy of the name to domain mapping
func (s *Space) Domains() map[string]Domain {
	out := make(map[string]Domain, len(s.domains))
	for k, v := range s.domains {
		out[k] = v
	}
	return out
}

// Sample draws one value per parameter
func (s *Space) Sample(r *rand.Rand) map[string]any {
	out := make(map[string]any, len(s.names))
	for _, name := range s.names {
		out[name] = s.domains[name].Sample(r)
	}
	return out
}

// descriptor is the serialized form of a domain
type descriptor struct {
	Type       string   `json:"type" yaml:"type"`
	Categories []any    `json:"categories,omitempty" yaml:"categories,omitempty"`
	Lower      *float64 `json:"lower,omitempty" yaml:"lower,omitempty"`
	Upper      *float64 `json:"upper,omitempty" yaml:"upper,omitempty"`
}

func describe(d Domain) descriptor {
	switch v := d.(type) {
	case Categorical:
		return descriptor{Type: v.Kind(), Categories: v.Categories}
	case Float:
		lo, hi := v.Lower, v.Upper
		return descriptor{Type: v.Kind(), Lower: &lo, Upper: &hi}
	}
	return descriptor{Type: d.Kind()}
}

// MarshalJSON encodes the space as an object of descriptors, keeping name order
func (s *Space) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(describe(s.domains[name]))
		if err != nil {
			return nil, fmt.Errorf("encode domain %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the space as a mapping of descriptors, keeping name order
func (s *Space) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.names {
		var val yaml.Node
		if err := val.Encode(describe(s.domains[name])); err != nil {
			return nil, fmt.Errorf("encode domain %q: %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&val,
		)
	}
	return node, nil
}
