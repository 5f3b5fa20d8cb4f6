// FILE: lixenwraith/hparams/register_test.go
package hparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trainParams struct {
	LR        float64 `hparam:"learning_rate,alias=lr,strategy=loguniform,choices=0.0001|0.1" help:"Learning rate"`
	Optimizer string  `hparam:"optimizer,strategy=choice,choices=adam|sgd" help:"Optimizer"`
	Epochs    int     `hparam:"epochs,alias=e"`
	AMP       bool
	Seed      int64 `hparam:"-"`
	internal  int
}

// TestFromStruct tests declarations built from tagged struct fields
func TestFromStruct(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		c, err := FromStruct(trainParams{LR: 0.01, Optimizer: "adam", Epochs: 10, internal: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"learning_rate", "optimizer", "epochs", "AMP"}, c.Names())

		lr, _ := c.Get("learning_rate")
		assert.Equal(t, Config{
			Name:        "learning_rate",
			Alias:       "lr",
			Type:        Float,
			Default:     0.01,
			Choices:     []any{0.0001, 0.1},
			Strategy:    LogUniform,
			Description: "Learning rate",
		}, lr)

		opt, _ := c.Get("optimizer")
		assert.Equal(t, []any{"adam", "sgd"}, opt.Choices)
		assert.Equal(t, Choice, opt.Strategy)

		epochs, _ := c.Get("epochs")
		assert.Equal(t, 10, epochs.Default)
		assert.Equal(t, "e", epochs.Alias)
		assert.Equal(t, Constant, epochs.Strategy)

		amp, _ := c.Get("AMP")
		assert.Equal(t, Bool, amp.Type)
		assert.Equal(t, false, amp.Default)
	})

	t.Run("Pointer", func(t *testing.T) {
		c, err := FromStruct(&trainParams{LR: 0.01, Optimizer: "sgd"})
		require.NoError(t, err)
		opt, _ := c.Get("optimizer")
		assert.Equal(t, "sgd", opt.Default)
	})

	t.Run("NotAStruct", func(t *testing.T) {
		_, err := FromStruct(42)
		assert.Error(t, err)
		_, err = FromStruct((*trainParams)(nil))
		assert.Error(t, err)
	})

	t.Run("AllOrNothing", func(t *testing.T) {
		type broken struct {
			Good   int     `hparam:"good"`
			Bad    float64 `hparam:"bad,strategy=uniform"`
			Nested struct{ X int }
		}

		c := New().MustAdd("existing", Int)
		err := c.AddStruct(broken{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Bad")
		assert.Contains(t, err.Error(), "field Nested")
		assert.Equal(t, []string{"existing"}, c.Names())
	})

	t.Run("DuplicateName", func(t *testing.T) {
		type dup struct {
			A int `hparam:"x"`
			B int `hparam:"x"`
		}
		_, err := FromStruct(dup{})
		assert.ErrorContains(t, err, "duplicate name")
	})

	t.Run("BadChoice", func(t *testing.T) {
		type bad struct {
			N int `hparam:"n,strategy=choice,choices=1|two"`
		}
		_, err := FromStruct(bad{})
		assert.ErrorContains(t, err, "choices")
	})
}
