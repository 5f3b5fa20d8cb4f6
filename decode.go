// FILE: lixenwraith/hparams/decode.go
package hparams

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// entryFields is the per-entry schema of a declaration document
type entryFields struct {
	Type        Type     `mapstructure:"type"`
	Default     any      `mapstructure:"default"`
	Choices     []any    `mapstructure:"choices"`
	Strategy    Strategy `mapstructure:"strategy"`
	Description string   `mapstructure:"description"`
	Alias       string   `mapstructure:"alias"`
}

// decodeEntry is the single authoritative function turning a raw document
// entry into a validated Config. Values are converted to the declared type.
func decodeEntry(raw RawEntry) (Config, error) {
	if _, ok := raw.Fields["type"]; !ok || raw.Fields["type"] == nil {
		return Config{}, errors.New("missing required field \"type\"")
	}

	// Tags are checked here since mapstructure reports hook errors as plain strings
	name, ok := raw.Fields["type"].(string)
	if !ok {
		return Config{}, fmt.Errorf("field \"type\" must be a type name, got %T", raw.Fields["type"])
	}
	if _, err := ParseType(name); err != nil {
		return Config{}, err
	}
	if tag, ok := raw.Fields["strategy"].(string); ok {
		if _, err := ParseStrategy(tag); err != nil {
			return Config{}, err
		}
	}

	var decoded entryFields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToTypeHookFunc(),
			stringToStrategyHookFunc(),
		),
	})
	if err != nil {
		return Config{}, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(raw.Fields); err != nil {
		return Config{}, err
	}

	def, err := decoded.Type.Coerce(decoded.Default)
	if err != nil {
		return Config{}, fmt.Errorf("default: %w", err)
	}

	var choices []any
	if len(decoded.Choices) > 0 {
		if choices, err = decoded.Type.CoerceAll(decoded.Choices); err != nil {
			return Config{}, fmt.Errorf("choices: %w", err)
		}
	}

	return NewConfig(raw.Name, decoded.Type,
		WithAlias(decoded.Alias),
		WithDefault(def),
		WithChoices(choices...),
		WithStrategy(decoded.Strategy),
		WithDescription(decoded.Description),
	)
}

// stringToTypeHookFunc handles Type conversion from type names
func stringToTypeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Type(0)) {
			return data, nil
		}
		return ParseType(reflect.ValueOf(data).String())
	}
}

// stringToStrategyHookFunc handles Strategy conversion, rejecting unknown tags
func stringToStrategyHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Strategy("")) {
			return data, nil
		}
		return ParseStrategy(reflect.ValueOf(data).String())
	}
}
