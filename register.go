// FILE: lixenwraith/hparams/register.go
package hparams

import (
	"fmt"
	"reflect"
	"strings"
)

// tagName is the struct tag read by FromStruct and Namespace.Decode
const tagName = "hparam"

// helpTagName holds the description of a struct field
const helpTagName = "help"

// FromStruct builds declarations from the exported fields of a struct.
// The field value is the default. Fields are configured through tags:
//
//	type Params struct {
//	    LR     float64 `hparam:"lr,alias=l,strategy=loguniform,choices=0.0001|0.1" help:"learning rate"`
//	    Epochs int     `hparam:"epochs" help:"training epochs"`
//	    Seed   int     `hparam:"-"`
//	}
//
// Without a tag the field name is used. Nested structs are rejected since
// names are flat.
func FromStruct(structWithDefaults any) (*Configs, error) {
	out := New()
	if err := out.AddStruct(structWithDefaults); err != nil {
		return nil, err
	}
	return out, nil
}

// AddStruct declares the fields of a struct, see FromStruct.
// Nothing is added if any field fails.
func (c *Configs) AddStruct(structWithDefaults any) error {
	v := reflect.ValueOf(structWithDefaults)

	// Handle pointer or direct struct value
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("AddStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("AddStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	staged := New()
	var errors []string
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(tagName)
		if tag == "-" {
			continue // Skip this field
		}

		cfg, err := configFromField(field, fieldValue, tag)
		if err != nil {
			errors = append(errors, fmt.Sprintf("field %s: %v", field.Name, err))
			continue
		}
		if staged.Has(cfg.Name) {
			errors = append(errors, fmt.Sprintf("field %s: duplicate name %q", field.Name, cfg.Name))
			continue
		}
		staged.insert(cfg)
	}

	if len(errors) > 0 {
		return fmt.Errorf("failed to declare %d field(s): %s", len(errors), strings.Join(errors, "; "))
	}

	c.Merge(staged)
	return nil
}

func configFromField(field reflect.StructField, fieldValue reflect.Value, tag string) (Config, error) {
	name, opts := splitTagOptions(tag)
	if name == "" {
		name = field.Name
	}

	typ, ok := typeOfValue(field.Type.Kind())
	if !ok {
		return Config{}, fmt.Errorf("%w: unsupported field kind %s", ErrUnknownType, field.Type.Kind())
	}

	def, err := typ.Coerce(fieldValue.Interface())
	if err != nil {
		return Config{}, err
	}

	strategy, err := ParseStrategy(opts["strategy"])
	if err != nil {
		return Config{}, err
	}

	var choices []any
	if raw := opts["choices"]; raw != "" {
		for _, s := range strings.Split(raw, "|") {
			ch, err := typ.Parse(s)
			if err != nil {
				return Config{}, fmt.Errorf("choices: %w", err)
			}
			choices = append(choices, ch)
		}
	}

	return NewConfig(name, typ,
		WithAlias(opts["alias"]),
		WithDefault(def),
		WithChoices(choices...),
		WithStrategy(strategy),
		WithDescription(field.Tag.Get(helpTagName)),
	)
}
