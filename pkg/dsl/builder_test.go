package dsl

import (
	"testing"

	"github.com/hashpad/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addOne(tape string) *Builder {
	b := New().Tape(tape)

	b.State("q0").
		Right("0", "0", "q0").
		Right("1", "1", "q0").
		Left("#", "#", "q1")

	b.State("q1").
		Left("1", "0", "q1").
		Stay("0", "1", "f").
		Stay("#", "1", "f")

	b.State("f").Accept()
	return b
}

func TestBuilder_AddOne(t *testing.T) {
	m, err := addOne("11").Build()
	require.NoError(t, err)

	assert.Equal(t, "q0", m.StartState().Name())
	assert.Len(t, m.States(), 3)
	assert.Equal(t, 5, m.Transitions().Len())

	for i := 0; m.Running() && i < 100; i++ {
		m.Step()
	}

	require.False(t, m.Running())
	assert.True(t, m.Accepted())
	assert.Equal(t, "100", m.Head().Tape().Trimmed())
}

func TestBuilder_StartOverride(t *testing.T) {
	b := addOne("1")
	b.State("f").Start()

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "f", m.StartState().Name())
}

func TestBuilder_EmptyTapeIsBlank(t *testing.T) {
	m, err := addOne("").Build()
	require.NoError(t, err)
	assert.True(t, m.Current().Symbol.IsBlank())
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("no states", func(t *testing.T) {
		_, err := New().Build()
		assert.ErrorIs(t, err, domain.ErrNoStates)
	})

	t.Run("unknown target", func(t *testing.T) {
		b := New()
		b.State("q0").Right("0", "0", "nowhere")
		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrUnknownState)
	})

	t.Run("duplicate rule", func(t *testing.T) {
		b := New()
		b.State("q0").
			Right("0", "0", "q0").
			Left("0", "1", "q0")
		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrDuplicateTransition)
	})

	t.Run("errors are joined", func(t *testing.T) {
		b := New().Input("ab").Tape("01")
		b.State("q0").Right("00", "0", "q0")
		_, err := b.Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
		assert.Contains(t, err.Error(), "input alphabet")
		assert.Contains(t, err.Error(), "read")
	})
}
