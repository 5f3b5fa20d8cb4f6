// FILE: lixenwraith/hparams/configs_test.go
package hparams

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfigs returns an empty collection logging into buf
func newTestConfigs(buf *bytes.Buffer) *Configs {
	return New().SetLogger(zerolog.New(buf))
}

// searchConfigs declares one parameter per strategy
func searchConfigs(t *testing.T) *Configs {
	t.Helper()
	c := New()
	require.NoError(t, c.Add("one", Int, WithDefault(1), WithStrategy(Constant)))
	require.NoError(t, c.Add("two", Int, WithDefault(2), WithStrategy(Choice), WithChoices(2, 20)))
	require.NoError(t, c.Add("three", Int, WithDefault(3), WithStrategy(Uniform), WithChoices(3, 30)))
	require.NoError(t, c.Add("four", Int, WithDefault(4), WithStrategy(LogUniform), WithChoices(4, 40)))
	return c
}

// TestAdd tests declaring parameters
func TestAdd(t *testing.T) {
	t.Run("AddThenGet", func(t *testing.T) {
		c := New()
		err := c.Add("new_arg", String,
			WithDefault("the new black"),
			WithStrategy(Constant),
			WithDescription("Just a test"),
		)
		require.NoError(t, err)

		cfg, ok := c.Get("new_arg")
		require.True(t, ok)
		assert.Equal(t, Config{
			Name:        "new_arg",
			Type:        String,
			Default:     "the new black",
			Strategy:    Constant,
			Description: "Just a test",
		}, cfg)
	})

	t.Run("Names", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add("new_arg", String, WithDefault("the new black")))
		require.NoError(t, c.Add("another", Int, WithDefault(42)))
		assert.Equal(t, []string{"new_arg", "another"}, c.Names())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("FailureLeavesCollectionUnchanged", func(t *testing.T) {
		c := New().MustAdd("one", Int, WithDefault(1))

		err := c.Add("two", Int, WithStrategy(Choice))
		assert.ErrorIs(t, err, ErrMissingChoices)

		err = c.Add("five", Int, WithDefault(5), WithStrategy("illegal"), WithChoices(5, 50))
		assert.ErrorIs(t, err, ErrInvalidStrategy)

		assert.Equal(t, []string{"one"}, c.Names())
		assert.False(t, c.Has("two"))
	})

	t.Run("OverwriteKeepsPositionAndWarns", func(t *testing.T) {
		var buf bytes.Buffer
		c := newTestConfigs(&buf)
		c.MustAdd("a", Int, WithDefault(1)).
			MustAdd("b", Int, WithDefault(2)).
			MustAdd("a", Int, WithDefault(10))

		assert.Equal(t, []string{"a", "b"}, c.Names())
		cfg, _ := c.Get("a")
		assert.Equal(t, 10, cfg.Default)

		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), `"name":"a"`)
		assert.Contains(t, buf.String(), "overwriting existing parameter declaration")
	})

	t.Run("NoWarningForNewNames", func(t *testing.T) {
		var buf bytes.Buffer
		newTestConfigs(&buf).MustAdd("a", Int).MustAdd("b", Int)
		assert.Empty(t, buf.String())
	})

	t.Run("MustAddPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			New().MustAdd("x", Int, WithStrategy(Uniform))
		})
	})

	t.Run("Put", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Put(Config{Name: "x", Type: Float, Default: 0.5}))
		cfg, _ := c.Get("x")
		assert.Equal(t, Constant, cfg.Strategy)

		err := c.Put(Config{Name: "y", Type: Float, Strategy: Choice})
		assert.ErrorIs(t, err, ErrMissingChoices)
	})

	t.Run("ZeroValueUsable", func(t *testing.T) {
		var buf bytes.Buffer
		var c Configs
		c.SetLogger(zerolog.New(&buf))
		require.NoError(t, c.Add("x", Int))
		assert.Equal(t, []string{"x"}, c.Names())
	})
}

// TestValuesAreCopies tests that views cannot mutate the collection
func TestValuesAreCopies(t *testing.T) {
	c := New().MustAdd("x", Int, WithStrategy(Choice), WithChoices(1, 2))

	names := c.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"x"}, c.Names())

	values := c.Values()
	cfg := values["x"]
	cfg.Choices[0] = 100
	delete(values, "x")

	got, ok := c.Get("x")
	require.True(t, ok)
	assert.Equal(t, []any{1, 2}, got.Choices)
}

// TestUnion tests combining collections
func TestUnion(t *testing.T) {
	c1 := New().MustAdd("one", Int, WithDefault(1))
	c2 := New().MustAdd("two", Int, WithDefault(2))

	t.Run("Union", func(t *testing.T) {
		c3 := c1.Union(c2)
		assert.Equal(t, []string{"one", "two"}, c3.Names())
		// Operands untouched
		assert.Equal(t, []string{"one"}, c1.Names())
		assert.Equal(t, []string{"two"}, c2.Names())
	})

	t.Run("Merge", func(t *testing.T) {
		c4 := New()
		assert.Empty(t, c4.Names())
		c4.Merge(c1)
		assert.Equal(t, []string{"one"}, c4.Names())
		c4.Merge(c2)
		assert.Equal(t, []string{"one", "two"}, c4.Names())
	})

	t.Run("Sum", func(t *testing.T) {
		c5 := Sum(c1, c2)
		assert.Equal(t, []string{"one", "two"}, c5.Names())

		c6 := Sum(nil, c1, nil, c2)
		assert.Equal(t, []string{"one", "two"}, c6.Names())

		assert.Equal(t, 0, Sum().Len())
	})

	t.Run("NilLeftOperand", func(t *testing.T) {
		var zero *Configs
		assert.Equal(t, []string{"one"}, zero.Union(c1).Names())
		assert.Equal(t, []string{"two"}, zero.Merge(c2).Names())
	})

	t.Run("RightWinsInLeftPosition", func(t *testing.T) {
		var buf bytes.Buffer
		left := newTestConfigs(&buf).
			MustAdd("a", Int, WithDefault(1)).
			MustAdd("b", Int, WithDefault(2))
		right := New().
			MustAdd("c", Int, WithDefault(3)).
			MustAdd("a", Int, WithDefault(100))

		u := left.Union(right)
		assert.Equal(t, []string{"a", "b", "c"}, u.Names())
		cfg, _ := u.Get("a")
		assert.Equal(t, 100, cfg.Default)
		assert.Contains(t, buf.String(), `"name":"a"`)
	})
}

// TestDifference tests removing declarations by name
func TestDifference(t *testing.T) {
	c1 := New().
		MustAdd("one", Int, WithDefault(1)).
		MustAdd("two", Int, WithDefault(2)).
		MustAdd("three", Int, WithDefault(3))

	t.Run("ByName", func(t *testing.T) {
		c2 := New().MustAdd("one", Int, WithDefault(1))
		assert.Equal(t, []string{"two", "three"}, c1.Difference(c2).Names())
	})

	t.Run("NameOnlyMatching", func(t *testing.T) {
		// Different declaration, same name
		c2 := New().MustAdd("two", String, WithDefault("x"))
		assert.Equal(t, []string{"one", "three"}, c1.Difference(c2).Names())
	})

	t.Run("OrderFromLeft", func(t *testing.T) {
		c2 := New().MustAdd("three", Int).MustAdd("one", Int)
		assert.Equal(t, []string{"two"}, c1.Difference(c2).Names())
	})

	t.Run("NilOperands", func(t *testing.T) {
		assert.Equal(t, c1.Names(), c1.Difference(nil).Names())
		var zero *Configs
		assert.Equal(t, 0, zero.Difference(c1).Len())
	})
}

// TestDefaultValues tests the defaults namespace
func TestDefaultValues(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		ns := New().
			MustAdd("a", Int, WithDefault(1)).
			MustAdd("b", Int, WithDefault(2), WithStrategy(Choice), WithChoices(2, 20)).
			DefaultValues()
		assert.Equal(t, NewNamespace("a", 1, "b", 2), ns)
	})

	t.Run("AllStrategies", func(t *testing.T) {
		c := searchConfigs(t)
		ns := c.DefaultValues()
		assert.True(t, ns.Equal(NewNamespace("one", 1, "two", 2, "three", 3, "four", 4)))
		assert.Equal(t, []string{"one", "two", "three", "four"}, ns.Keys())
	})

	t.Run("MissingDefaultIsNil", func(t *testing.T) {
		ns := New().MustAdd("x", Float).DefaultValues()
		v, ok := ns.Get("x")
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

// TestClone tests independent copies
func TestClone(t *testing.T) {
	c := searchConfigs(t)
	clone := c.Clone()

	if diff := cmp.Diff(c.Values(), clone.Values()); diff != "" {
		t.Errorf("clone mismatch (-want +got):\n%s", diff)
	}

	clone.MustAdd("five", Int)
	assert.False(t, c.Has("five"))
	assert.Equal(t, []string{"one", "two", "three", "four"}, c.Names())
}

// TestFilter tests predicate selection
func TestFilter(t *testing.T) {
	c := searchConfigs(t)
	searchable := c.Filter(func(cfg Config) bool { return cfg.Strategy.Searchable() })
	assert.Equal(t, []string{"two", "three", "four"}, searchable.Names())
}
