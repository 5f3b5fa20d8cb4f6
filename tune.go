// FILE: lixenwraith/hparams/tune.go
package hparams

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/hparams/space"
)

// TuneConfig returns the search space of every searchable entry, in
// insertion order. Constant entries are not part of the space.
func (c *Configs) TuneConfig() *space.Space {
	s := space.New()
	if c == nil {
		return s
	}
	for _, name := range c.names {
		cfg := c.entries[name]
		if !cfg.Strategy.Searchable() {
			continue
		}
		s.Add(name, domainOf(cfg))
	}
	return s
}

// domainOf maps a validated searchable entry to its sampling primitive
func domainOf(cfg Config) space.Domain {
	switch cfg.Strategy {
	case Uniform:
		// Bounds were checked by Validate
		lo, hi, _ := bounds(cfg.Choices)
		return space.Uniform(lo, hi)
	case LogUniform:
		lo, hi, _ := bounds(cfg.Choices)
		return space.LogUniform(lo, hi)
	default:
		return space.Choice(cfg.Choices)
	}
}

// Sample returns one trial configuration: the default of every constant
// entry and a draw from the search space for the others. Ranged int
// parameters yield ints drawn over the closed range of their choices.
func (c *Configs) Sample(r *rand.Rand) Namespace {
	ns := NewNamespace()
	if c == nil {
		return ns
	}
	for _, name := range c.names {
		cfg := c.entries[name]
		if !cfg.Strategy.Searchable() {
			ns.Set(name, cfg.Default)
			continue
		}
		if cfg.Strategy.Ranged() && cfg.Type == Int {
			ns.Set(name, sampleInt(cfg, r))
			continue
		}
		ns.Set(name, domainOf(cfg).Sample(r))
	}
	return ns
}

// sampleInt draws an integer from [min(choices), max(choices)], both bounds
// included. Log draws are taken over [lo, hi+1) and floored.
func sampleInt(cfg Config, r *rand.Rand) int {
	flo, fhi, _ := bounds(cfg.Choices)
	lo, hi := int(math.Ceil(flo)), int(math.Floor(fhi))
	if hi <= lo {
		return lo
	}
	if cfg.Strategy == LogUniform {
		f := space.LogUniform(float64(lo), float64(hi)+1).Sample(r).(float64)
		return min(max(int(math.Floor(f)), lo), hi)
	}
	return lo + r.Intn(hi-lo+1)
}
