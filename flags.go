// FILE: lixenwraith/hparams/flags.go
package hparams

import (
	"flag"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/pflag"
)

// aliasAnnotation marks a long alias flag with the name of the flag it mirrors
const aliasAnnotation = "hparams/alias-of"

// flagValue is a typed pflag.Value restricted to an optional list of choices
type flagValue struct {
	typ     Type
	def     any
	value   any
	choices []any
}

func newFlagValue(cfg Config) *flagValue {
	return &flagValue{
		typ:     cfg.Type,
		def:     cfg.Default,
		value:   cfg.Default,
		choices: append([]any(nil), cfg.Choices...),
	}
}

func (v *flagValue) String() string {
	if v == nil {
		return ""
	}
	return formatValue(v.value)
}

func (v *flagValue) Set(s string) error {
	parsed, err := v.typ.Parse(s)
	if err != nil {
		return err
	}
	if len(v.choices) > 0 && !v.allowed(parsed) {
		return fmt.Errorf("%w: %q (choose from %s)", ErrInvalidChoice, s, formatChoices(v.choices))
	}
	v.value = parsed
	return nil
}

func (v *flagValue) Type() string {
	return v.typ.String()
}

// Get returns the current value
func (v *flagValue) Get() any {
	return v.value
}

// Choices returns the permitted values, nil when unrestricted
func (v *flagValue) Choices() []any {
	if v.choices == nil {
		return nil
	}
	return append([]any(nil), v.choices...)
}

// allowed compares a parsed value against the choices converted to the flag type
func (v *flagValue) allowed(parsed any) bool {
	for _, ch := range v.choices {
		c, err := v.typ.Coerce(ch)
		if err != nil {
			continue
		}
		if reflect.DeepEqual(c, parsed) {
			return true
		}
	}
	return false
}

func formatChoices(choices []any) string {
	parts := make([]string, len(choices))
	for i, ch := range choices {
		parts[i] = formatValue(ch)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// AddFlags registers every entry on fs as --<name>, with the alias as a
// shorthand (one letter) or a second long flag. fs is created when nil.
// Nothing is registered if any name is already defined.
func (c *Configs) AddFlags(fs *pflag.FlagSet) (*pflag.FlagSet, error) {
	return c.addFlags(fs, func(Config) bool { return true })
}

// AddTuneFlags registers only the constant entries; searchable entries are
// expected to come from the search backend.
func (c *Configs) AddTuneFlags(fs *pflag.FlagSet) (*pflag.FlagSet, error) {
	return c.addFlags(fs, func(cfg Config) bool { return !cfg.Strategy.Searchable() })
}

func (c *Configs) addFlags(fs *pflag.FlagSet, keep func(Config) bool) (*pflag.FlagSet, error) {
	if fs == nil {
		fs = pflag.NewFlagSet("hparams", pflag.ContinueOnError)
		fs.SortFlags = false
	}
	selected := c.Filter(keep).All()

	// Check every name before touching fs, pflag panics on redefinition
	taken := make(map[string]bool)
	for _, cfg := range selected {
		longNames := []string{cfg.Name}
		if len(cfg.Alias) > 1 {
			longNames = append(longNames, cfg.Alias)
		}
		for _, n := range longNames {
			if taken[n] || fs.Lookup(n) != nil {
				return fs, fmt.Errorf("%w: --%s", ErrFlagRedefined, n)
			}
			taken[n] = true
		}
		if len(cfg.Alias) == 1 {
			if taken["-"+cfg.Alias] || fs.ShorthandLookup(cfg.Alias) != nil {
				return fs, fmt.Errorf("%w: -%s", ErrFlagRedefined, cfg.Alias)
			}
			taken["-"+cfg.Alias] = true
		}
	}

	for _, cfg := range selected {
		v := newFlagValue(cfg)
		shorthand := ""
		if len(cfg.Alias) == 1 {
			shorthand = cfg.Alias
		}
		f := fs.VarPF(v, cfg.Name, shorthand, cfg.Description)
		if cfg.Type == Bool {
			f.NoOptDefVal = "true"
		}

		if len(cfg.Alias) > 1 {
			af := fs.VarPF(v, cfg.Alias, "", fmt.Sprintf("alias of --%s", cfg.Name))
			if cfg.Type == Bool {
				af.NoOptDefVal = "true"
			}
			if err := fs.SetAnnotation(cfg.Alias, aliasAnnotation, []string{cfg.Name}); err != nil {
				return fs, fmt.Errorf("annotate alias --%s: %w", cfg.Alias, err)
			}
		}
	}
	return fs, nil
}

// visitDeclared walks the flags of fs in definition order, skipping the help
// flag and long alias flags. It returns the alias recorded for each name.
func visitDeclared(fs *pflag.FlagSet, fn func(f *pflag.Flag, alias string) error) error {
	sorted := fs.SortFlags
	fs.SortFlags = false
	defer func() { fs.SortFlags = sorted }()

	aliases := make(map[string]string)
	fs.VisitAll(func(f *pflag.Flag) {
		if of := f.Annotations[aliasAnnotation]; len(of) > 0 {
			aliases[of[0]] = f.Name
		}
	})

	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "help" {
			return
		}
		if _, isAlias := f.Annotations[aliasAnnotation]; isAlias {
			return
		}
		alias := aliases[f.Name]
		if alias == "" && f.Shorthand != f.Name {
			alias = f.Shorthand
		}
		err = fn(f, alias)
	})
	return err
}

// FromFlagSet builds one constant Config per flag defined on fs, in
// definition order. Type, default, choices and usage text are taken from the
// flag. Flag types outside int, float, string and bool are read as strings.
func FromFlagSet(fs *pflag.FlagSet) (*Configs, error) {
	out := New()
	if fs == nil {
		return out, nil
	}

	err := visitDeclared(fs, func(f *pflag.Flag, alias string) error {
		cfg, err := configFromFlag(f)
		if err != nil {
			return err
		}
		cfg.Alias = alias
		return out.Put(cfg)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FromGoFlagSet is FromFlagSet for a standard library flag set.
// The standard library keeps no definition order, so entries are sorted by name.
func FromGoFlagSet(gfs *flag.FlagSet) (*Configs, error) {
	if gfs == nil {
		return New(), nil
	}
	fs := pflag.NewFlagSet(gfs.Name(), pflag.ContinueOnError)
	fs.AddGoFlagSet(gfs)
	return FromFlagSet(fs)
}

func configFromFlag(f *pflag.Flag) (Config, error) {
	cfg := Config{
		Name:        f.Name,
		Strategy:    Constant,
		Description: f.Usage,
	}

	if v, ok := f.Value.(*flagValue); ok {
		cfg.Type = v.typ
		cfg.Default = v.def
		cfg.Choices = v.Choices()
		return cfg, nil
	}

	typ, err := ParseType(f.Value.Type())
	if err != nil {
		typ = String
	}
	cfg.Type = typ

	if f.DefValue != "" || typ == String {
		def, err := typ.Parse(f.DefValue)
		if err != nil {
			return Config{}, fmt.Errorf("flag --%s: default: %w", f.Name, err)
		}
		cfg.Default = def
	}
	return cfg, nil
}

// NamespaceFromFlags collects the current values of the flags on fs, in
// definition order, skipping help and alias flags.
func NamespaceFromFlags(fs *pflag.FlagSet) (Namespace, error) {
	ns := NewNamespace()
	if fs == nil {
		return ns, nil
	}

	err := visitDeclared(fs, func(f *pflag.Flag, _ string) error {
		if v, ok := f.Value.(*flagValue); ok {
			ns.Set(f.Name, v.Get())
			return nil
		}
		typ, err := ParseType(f.Value.Type())
		if err != nil {
			ns.Set(f.Name, f.Value.String())
			return nil
		}
		val, err := typ.Parse(f.Value.String())
		if err != nil {
			return fmt.Errorf("flag --%s: %w", f.Name, err)
		}
		ns.Set(f.Name, val)
		return nil
	})
	if err != nil {
		return Namespace{}, err
	}
	return ns, nil
}

// ParseFlags registers every entry on a new flag set, parses args and
// returns the resulting values. Unknown flags are errors.
func (c *Configs) ParseFlags(args []string) (Namespace, error) {
	fs, err := c.AddFlags(nil)
	if err != nil {
		return Namespace{}, err
	}
	if err := fs.Parse(args); err != nil {
		return Namespace{}, err
	}
	return NamespaceFromFlags(fs)
}
