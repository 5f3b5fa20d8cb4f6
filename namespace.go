// FILE: lixenwraith/hparams/namespace.go
package hparams

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Namespace is a flat, ordered name to value mapping: resolved defaults,
// parsed flags or one sampled trial.
type Namespace struct {
	keys   []string
	values map[string]any
}

// NewNamespace creates a Namespace from alternating name, value pairs
func NewNamespace(pairs ...any) Namespace {
	ns := Namespace{values: make(map[string]any, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		ns.Set(fmt.Sprint(pairs[i]), pairs[i+1])
	}
	return ns
}

// Set assigns a value, appending the name if it is new
func (n *Namespace) Set(name string, value any) {
	if n.values == nil {
		n.values = make(map[string]any)
	}
	if _, exists := n.values[name]; !exists {
		n.keys = append(n.keys, name)
	}
	n.values[name] = value
}

// Get returns the value stored under name
func (n Namespace) Get(name string) (any, bool) {
	v, ok := n.values[name]
	return v, ok
}

// Keys returns the names in insertion order
func (n Namespace) Keys() []string {
	return append([]string{}, n.keys...)
}

// Len returns the number of names
func (n Namespace) Len() int {
	return len(n.keys)
}

// Map returns a copy of the underlying mapping
func (n Namespace) Map() map[string]any {
	out := make(map[string]any, len(n.values))
	for k, v := range n.values {
		out[k] = v
	}
	return out
}

// Equal reports whether both namespaces hold the same names, values and order
func (n Namespace) Equal(other Namespace) bool {
	if len(n.keys) != len(other.keys) {
		return false
	}
	for i, k := range n.keys {
		if other.keys[i] != k {
			return false
		}
		if !reflect.DeepEqual(n.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

// String retrieves a value as a string.
// Attempts conversion from common types if the stored value isn't already a string.
func (n Namespace) String(name string) (string, error) {
	val, found := n.Get(name)
	if !found {
		return "", fmt.Errorf("name not present: %s", name)
	}
	if val == nil {
		return "", nil // Treat nil as empty string for convenience
	}
	s, err := String.Coerce(val)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s.(string), nil
}

// Int retrieves a value as an int.
// Attempts conversion from integers, whole floats and parsable strings.
func (n Namespace) Int(name string) (int, error) {
	val, found := n.Get(name)
	if !found {
		return 0, fmt.Errorf("name not present: %s", name)
	}
	if val == nil {
		return 0, fmt.Errorf("value for %s is nil, cannot convert to int", name)
	}
	i, err := Int.Coerce(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return i.(int), nil
}

// Float64 retrieves a value as a float64.
// Attempts conversion from numeric types, parsable strings, and booleans.
func (n Namespace) Float64(name string) (float64, error) {
	val, found := n.Get(name)
	if !found {
		return 0.0, fmt.Errorf("name not present: %s", name)
	}
	if val == nil {
		return 0.0, fmt.Errorf("value for %s is nil, cannot convert to float64", name)
	}
	if b, ok := val.(bool); ok {
		if b {
			return 1.0, nil
		}
		return 0.0, nil
	}
	f, err := Float.Coerce(val)
	if err != nil {
		return 0.0, fmt.Errorf("%s: %w", name, err)
	}
	return f.(float64), nil
}

// Bool retrieves a value as a bool.
// Attempts conversion from integers (0=false, non-zero=true) and parsable strings.
func (n Namespace) Bool(name string) (bool, error) {
	val, found := n.Get(name)
	if !found {
		return false, fmt.Errorf("name not present: %s", name)
	}
	if val == nil {
		return false, fmt.Errorf("value for %s is nil, cannot convert to bool", name)
	}
	b, err := Bool.Coerce(val)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return b.(bool), nil
}

// Decode copies the namespace into target, a non-nil pointer to a struct or map.
// Struct fields are matched through the "hparam" tag, falling back to the field name.
func (n Namespace) Decode(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(n.Map()); err != nil {
		return fmt.Errorf("decode namespace into %T: %w", target, err)
	}
	return nil
}

// MarshalJSON encodes the namespace as an object, keeping key order
func (n Namespace) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(n.values[k])
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the namespace as a mapping, keeping key order
func (n Namespace) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range n.keys {
		var val yaml.Node
		if err := val.Encode(n.values[k]); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// GoString renders the namespace like Namespace(a=1, b="x")
func (n Namespace) GoString() string {
	parts := make([]string, 0, len(n.keys))
	for _, k := range n.keys {
		v := n.values[k]
		if s, ok := v.(string); ok {
			parts = append(parts, k+"="+strconv.Quote(s))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return "Namespace(" + strings.Join(parts, ", ") + ")"
}
