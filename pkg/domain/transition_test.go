package domain_test

import (
	"testing"

	"github.com/hashpad/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	zero = domain.MustInputSymbol("0").Tape()
	one  = domain.MustInputSymbol("1").Tape()
)

func TestConfig_Equal(t *testing.T) {
	s := domain.NewState("s")
	twin := domain.NewState("s")

	a := domain.NewConfig(s, zero)
	b := domain.NewConfig(s, domain.MustInputSymbol("0").Tape())

	assert.True(t, a.Equal(b), "separate wrappers with equal fields are equal")
	assert.False(t, a.Equal(domain.NewConfig(twin, zero)), "states compare by identity")
	assert.False(t, a.Equal(domain.NewConfig(s, one)))
	assert.False(t, a.Equal(nil))
	assert.Equal(t, a.Key(), b.Key())

	next := a.AsNext()
	assert.Equal(t, domain.Stay, next.Direction)
	assert.True(t, next.Matches(a))
}

func TestTransitionTable(t *testing.T) {
	s := domain.NewState("s")
	q := domain.NewState("q")

	table := domain.NewTransitionTable()
	require.NoError(t, table.Add(s, zero, domain.NextConfig{State: q, Symbol: one, Direction: domain.Right}))
	require.NoError(t, table.Add(s, domain.Blank, domain.NextConfig{State: s, Symbol: domain.Blank, Direction: domain.Left}))
	require.NoError(t, table.Add(q, one, domain.NextConfig{State: q, Symbol: one, Direction: domain.Stay}))

	t.Run("Lookup Uses A Throwaway Key", func(t *testing.T) {
		next, ok := table.Lookup(domain.NewConfig(s, domain.MustInputSymbol("0").Tape()))
		require.True(t, ok)
		assert.Same(t, q, next.State)
		assert.Equal(t, one, next.Symbol)
		assert.Equal(t, domain.Right, next.Direction)
	})

	t.Run("Miss", func(t *testing.T) {
		_, ok := table.Lookup(domain.NewConfig(q, zero))
		assert.False(t, ok)
		_, ok = table.Lookup(domain.NewConfig(domain.NewState("s"), zero))
		assert.False(t, ok, "a state with the same name is a different state")
	})

	t.Run("Duplicate Rejected", func(t *testing.T) {
		err := table.Add(s, zero, domain.NextConfig{State: s, Symbol: zero, Direction: domain.Stay})
		assert.ErrorIs(t, err, domain.ErrDuplicateTransition)

		next, _ := table.Lookup(domain.NewConfig(s, zero))
		assert.Same(t, q, next.State, "first rule wins")
		assert.Equal(t, 3, table.Len())
	})

	t.Run("Nil State Rejected", func(t *testing.T) {
		err := table.Add(nil, zero, domain.NextConfig{State: s})
		assert.ErrorIs(t, err, domain.ErrUnknownState)
		err = table.Add(s, one, domain.NextConfig{})
		assert.ErrorIs(t, err, domain.ErrUnknownState)
	})

	t.Run("Entries Keep Insertion Order", func(t *testing.T) {
		entries := table.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, "0|1,R", entries[0].Label())
		assert.Equal(t, "#|#,L", entries[1].Label())
		assert.Equal(t, "1|1,N", entries[2].Label())

		assert.Len(t, table.Outgoing(s), 2)
		assert.Len(t, table.Outgoing(q), 1)
		assert.True(t, table.Has(q, one))
	})
}

func TestProjectGraph(t *testing.T) {
	s := domain.NewState("s")
	q := domain.NewState("q")
	f := domain.NewState("f")

	table := domain.NewTransitionTable()
	require.NoError(t, table.Add(s, zero, domain.NextConfig{State: q, Symbol: zero, Direction: domain.Right}))
	require.NoError(t, table.Add(s, one, domain.NextConfig{State: q, Symbol: zero, Direction: domain.Right}))
	require.NoError(t, table.Add(q, zero, domain.NextConfig{State: q, Symbol: zero, Direction: domain.Right}))
	require.NoError(t, table.Add(q, domain.Blank, domain.NextConfig{State: f, Symbol: domain.Blank, Direction: domain.Left}))
	require.NoError(t, table.Add(s, domain.Blank, domain.NextConfig{State: f, Symbol: one, Direction: domain.Stay}))

	g := domain.ProjectGraph([]*domain.State{s, q, f}, s, []*domain.State{f}, table)

	require.Len(t, g.Nodes, 3)
	assert.True(t, g.Nodes[0].Start)
	assert.True(t, g.Nodes[2].Accept)
	assert.False(t, g.Nodes[1].Accept)

	// 4 distinct (source, destination) pairs: s→q, s→f, q→q, q→f.
	require.Len(t, g.Edges, 4)

	sq := g.Edges[0]
	assert.Equal(t, s.ID(), sq.From)
	assert.Equal(t, q.ID(), sq.To)
	assert.Equal(t, []string{"0|0,R", "1|0,R"}, sq.Lines)
	assert.Equal(t, "0|0,R\n1|0,R", sq.Label())

	sf := g.Edges[1]
	assert.Equal(t, f.ID(), sf.To)
	assert.Len(t, sf.Lines, 1)

	assert.Equal(t, 5, table.Len(), "projection does not touch the table")
}
