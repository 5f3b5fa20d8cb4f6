// FILE: lixenwraith/hparams/strategy.go
package hparams

import (
	"fmt"
	"strings"
)

// Strategy tags how a parameter participates in hyperparameter search
type Strategy string

const (
	// Constant parameters are passed on the command line and never searched
	Constant Strategy = "constant"
	// Choice picks uniformly among the declared choices
	Choice Strategy = "choice"
	// Uniform samples uniformly between the smallest and largest choice
	Uniform Strategy = "uniform"
	// LogUniform samples log-uniformly between the smallest and largest choice
	LogUniform Strategy = "loguniform"
)

// Strategies lists every recognized strategy
var Strategies = []Strategy{Constant, Choice, Uniform, LogUniform}

// ParseStrategy converts a textual tag to a Strategy.
// An empty tag yields Constant.
func ParseStrategy(s string) (Strategy, error) {
	tag := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if tag == "" {
		return Constant, nil
	}
	if !tag.Valid() {
		return "", fmt.Errorf("%w: %q (expected one of %v)", ErrInvalidStrategy, s, Strategies)
	}
	return tag, nil
}

// Valid reports whether s is a recognized strategy
func (s Strategy) Valid() bool {
	switch s {
	case Constant, Choice, Uniform, LogUniform:
		return true
	}
	return false
}

// Searchable reports whether parameters with this strategy belong to the search space.
// The search-space export and the tune flag export both select on this predicate.
func (s Strategy) Searchable() bool {
	return s.Valid() && s != Constant
}

// Ranged reports whether the strategy samples from a numeric range
func (s Strategy) Ranged() bool {
	return s == Uniform || s == LogUniform
}

func (s Strategy) String() string {
	return string(s)
}
