// FILE: lixenwraith/hparams/namespace_test.go
package hparams

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNamespace(t *testing.T) {
	ns := NewNamespace("epochs", 10, "lr", 0.1, "name", "run", "amp", true, "seed", nil)

	t.Run("Order", func(t *testing.T) {
		assert.Equal(t, []string{"epochs", "lr", "name", "amp", "seed"}, ns.Keys())
		assert.Equal(t, 5, ns.Len())

		other := NewNamespace("lr", 0.1, "epochs", 10, "name", "run", "amp", true, "seed", nil)
		assert.False(t, ns.Equal(other))
		assert.Equal(t, ns.Map(), other.Map())
	})

	t.Run("SetExisting", func(t *testing.T) {
		n := NewNamespace("a", 1, "b", 2)
		n.Set("a", 3)
		assert.Equal(t, []string{"a", "b"}, n.Keys())
		v, _ := n.Get("a")
		assert.Equal(t, 3, v)
	})

	t.Run("ZeroValue", func(t *testing.T) {
		var n Namespace
		_, ok := n.Get("x")
		assert.False(t, ok)
		n.Set("x", 1)
		assert.Equal(t, 1, n.Len())
	})

	t.Run("TypedGetters", func(t *testing.T) {
		i, err := ns.Int("epochs")
		require.NoError(t, err)
		assert.Equal(t, 10, i)

		f, err := ns.Float64("lr")
		require.NoError(t, err)
		assert.Equal(t, 0.1, f)

		f, err = ns.Float64("epochs")
		require.NoError(t, err)
		assert.Equal(t, 10.0, f)

		s, err := ns.String("epochs")
		require.NoError(t, err)
		assert.Equal(t, "10", s)

		b, err := ns.Bool("amp")
		require.NoError(t, err)
		assert.True(t, b)

		s, err = ns.String("seed")
		require.NoError(t, err)
		assert.Empty(t, s)

		_, err = ns.Int("seed")
		assert.Error(t, err)

		floats := NewNamespace("whole", 3.0, "fraction", 2.7)
		i, err = floats.Int("whole")
		require.NoError(t, err)
		assert.Equal(t, 3, i)
		_, err = floats.Int("fraction")
		assert.Error(t, err)
		_, err = ns.Int("missing")
		assert.Error(t, err)
		_, err = ns.Bool("name")
		assert.Error(t, err)
	})

	t.Run("GoString", func(t *testing.T) {
		n := NewNamespace("defined_with_flag", 1337, "defined_with_hparams", "woke")
		assert.Equal(t, `Namespace(defined_with_flag=1337, defined_with_hparams="woke")`, fmt.Sprintf("%#v", n))
	})
}

func TestNamespaceDecode(t *testing.T) {
	type trial struct {
		Epochs  int           `hparam:"epochs"`
		LR      float64       `hparam:"learning_rate"`
		Layers  []string      `hparam:"layers"`
		Timeout time.Duration `hparam:"timeout"`
		Name    string
	}

	ns := NewNamespace(
		"epochs", "12",
		"learning_rate", 0.01,
		"layers", "conv,pool,dense",
		"timeout", "90s",
		"Name", "baseline",
	)

	var got trial
	require.NoError(t, ns.Decode(&got))
	assert.Equal(t, trial{
		Epochs:  12,
		LR:      0.01,
		Layers:  []string{"conv", "pool", "dense"},
		Timeout: 90 * time.Second,
		Name:    "baseline",
	}, got)

	assert.Error(t, ns.Decode(got))
	assert.Error(t, ns.Decode((*trial)(nil)))

	t.Run("Map", func(t *testing.T) {
		out := map[string]any{}
		require.NoError(t, NewNamespace("a", 1).Decode(&out))
		assert.Equal(t, map[string]any{"a": 1}, out)
	})
}

func TestNamespaceMarshal(t *testing.T) {
	ns := NewNamespace("zeta", 1, "alpha", "x", "mid", 0.5)

	t.Run("JSON", func(t *testing.T) {
		data, err := json.Marshal(ns)
		require.NoError(t, err)
		assert.Equal(t, `{"zeta":1,"alpha":"x","mid":0.5}`, string(data))
	})

	t.Run("YAML", func(t *testing.T) {
		data, err := yaml.Marshal(ns)
		require.NoError(t, err)
		assert.Equal(t, "zeta: 1\nalpha: x\nmid: 0.5\n", string(data))
	})
}
