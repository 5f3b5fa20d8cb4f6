// FILE: lixenwraith/hparams/type.go
package hparams

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Type is the primitive value type of a parameter
type Type int

const (
	Int Type = iota + 1
	Float
	String
	Bool
)

// ParseType resolves a type name as written in declaration files or reported by flag values
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int", "integer", "int64", "int32", "int16", "int8", "uint", "uint64", "uint32", "count":
		return Int, nil
	case "float", "float64", "float32", "double", "number":
		return Float, nil
	case "str", "string":
		return String, nil
	case "bool", "boolean":
		return Bool, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// String returns the type name used on the flag surface
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float64"
	case String:
		return "string"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Name returns the short type name written to declaration files
func (t Type) Name() string {
	if t == Float {
		return "float"
	}
	return t.String()
}

// Valid reports whether t is a known type
func (t Type) Valid() bool {
	return t >= Int && t <= Bool
}

// Parse converts a command-line string into a value of type t
func (t Type) Parse(s string) (any, error) {
	switch t {
	case Int:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as int: %w", s, err)
		}
		return int(i), nil
	case Float:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float: %w", s, err)
		}
		return f, nil
	case String:
		return s, nil
	case Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as bool: %w", s, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
}

// Coerce converts a decoded value (from YAML, JSON, TOML or flags) to the
// canonical Go representation of t: int, float64, string or bool.
// A nil value stays nil.
func (t Type) Coerce(val any) (any, error) {
	if val == nil {
		return nil, nil
	}

	v := reflect.ValueOf(val)
	switch t {
	case Int:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return int(v.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := v.Uint()
			if u > math.MaxInt64 {
				return nil, fmt.Errorf("cannot convert unsigned integer %d to int: overflow", u)
			}
			return int(u), nil
		case reflect.Float32, reflect.Float64:
			f := v.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
				return nil, fmt.Errorf("cannot convert %v to int: out of range", f)
			}
			if f != math.Trunc(f) {
				return nil, fmt.Errorf("cannot convert %v to int without truncation", f)
			}
			return int(f), nil
		case reflect.String:
			return t.Parse(v.String())
		}

	case Float:
		switch v.Kind() {
		case reflect.Float32, reflect.Float64:
			return v.Float(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(v.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(v.Uint()), nil
		case reflect.String:
			// json.Number lands here
			return t.Parse(v.String())
		}

	case String:
		switch x := val.(type) {
		case string:
			return x, nil
		case fmt.Stringer:
			return x.String(), nil
		}
		switch v.Kind() {
		case reflect.String:
			return v.String(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.FormatInt(v.Int(), 10), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(v.Uint(), 10), nil
		case reflect.Float32, reflect.Float64:
			return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil
		case reflect.Bool:
			return strconv.FormatBool(v.Bool()), nil
		}

	case Bool:
		switch v.Kind() {
		case reflect.Bool:
			return v.Bool(), nil
		case reflect.String:
			return t.Parse(v.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return v.Int() != 0, nil
		}

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}

	return nil, fmt.Errorf("cannot convert type %T to %s", val, t.Name())
}

// CoerceAll converts every element of vals, preserving order
func (t Type) CoerceAll(vals []any) ([]any, error) {
	if vals == nil {
		return nil, nil
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		c, err := t.Coerce(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// typeOfValue infers the Type of a Go value, used for struct fields
func typeOfValue(k reflect.Kind) (Type, bool) {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int, true
	case reflect.Float32, reflect.Float64:
		return Float, true
	case reflect.String:
		return String, true
	case reflect.Bool:
		return Bool, true
	}
	return 0, false
}

// formatValue renders a value the way it is shown as a flag default
func formatValue(val any) string {
	if val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return fmt.Sprint(val)
}

// toFloat converts a numeric value to float64
func toFloat(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}
	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		// json.Number
		if _, ok := val.(string); ok {
			return 0, false
		}
		f, err := strconv.ParseFloat(v.String(), 64)
		return f, err == nil
	}
	return 0, false
}
