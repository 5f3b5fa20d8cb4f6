// File: lixenwraith/hparams/convenience.go
package hparams

import (
	"fmt"
	"io"
	"strings"
)

// Quick reads declarations from a file and parses command-line arguments
// against them. This is the shortest path from a declaration file to values.
func Quick(path string, args []string) (Namespace, error) {
	c, err := FromFile(path)
	if err != nil {
		return Namespace{}, err
	}
	return c.ParseFlags(args)
}

// MustQuick is like Quick but panics on error
func MustQuick(path string, args []string) Namespace {
	ns, err := Quick(path, args)
	if err != nil {
		panic(fmt.Sprintf("hparams initialization failed: %v", err))
	}
	return ns
}

// Debug returns a formatted string showing every declaration
func (c *Configs) Debug() string {
	var b strings.Builder
	b.WriteString("Parameter declarations:\n")

	for _, cfg := range c.All() {
		b.WriteString(fmt.Sprintf("  %s:\n", cfg.Name))
		if cfg.Alias != "" {
			b.WriteString(fmt.Sprintf("    Alias: %s\n", cfg.Alias))
		}
		b.WriteString(fmt.Sprintf("    Type: %s\n", cfg.Type.Name()))
		b.WriteString(fmt.Sprintf("    Default: %v\n", cfg.Default))
		b.WriteString(fmt.Sprintf("    Strategy: %s\n", cfg.Strategy))
		if len(cfg.Choices) > 0 {
			b.WriteString(fmt.Sprintf("    Choices: %s\n", formatChoices(cfg.Choices)))
		}
		if cfg.Description != "" {
			b.WriteString(fmt.Sprintf("    Description: %s\n", cfg.Description))
		}
	}

	return b.String()
}

// Dump writes the declarations to w in the given format
func (c *Configs) Dump(w io.Writer, format Format) error {
	data, err := c.Encode(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
