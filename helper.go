// File: lixenwraith/hparams/helper.go
package hparams

import "strings"

// isValidName checks that a parameter name is usable as a long flag and a TOML bare key.
func isValidName(s string) bool {
	if len(s) == 0 {
		return false
	}
	// Bare keys are sequences of ASCII letters, ASCII digits, underscores, and dashes (A-Za-z0-9_-).
	if strings.HasPrefix(s, "-") {
		return false // Would be read as another flag
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isUnderscore := r == '_'
		isDash := r == '-'

		if !(isLetter || isDigit || isUnderscore || isDash) {
			return false
		}
	}
	return true
}

// splitTagOptions splits a struct tag value into its name and key=value options.
// Options without '=' are stored with an empty value.
func splitTagOptions(tag string) (string, map[string]string) {
	parts := strings.Split(tag, ",")
	opts := make(map[string]string, len(parts)-1)
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key, value, _ := strings.Cut(p, "=")
		opts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return strings.TrimSpace(parts[0]), opts
}
