package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testBoard(t *testing.T) *Board {
	t.Helper()
	board, err := NewBoard(42, 4, DefaultWeights())
	require.NoError(t, err)
	return board
}

func TestNewState(t *testing.T) {
	state := NewState(testBoard(t))

	for v := 0; v < NumVertices; v++ {
		require.True(t, state.IsAvailable(v))
		require.Zero(t, state.Occupant(v))
	}
	for player := 1; player <= 4; player++ {
		require.Empty(t, state.Houses(player))
	}
}

func TestPlaceSettlement(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		state := NewState(testBoard(t))

		require.NoError(t, state.PlaceSettlement(1, 0))
		require.Equal(t, []int{0}, state.Houses(1))
		require.Equal(t, 1, state.Occupant(0))
		require.False(t, state.IsAvailable(0))
	})

	t.Run("occupied vertex is rejected", func(t *testing.T) {
		state := NewState(testBoard(t))
		require.NoError(t, state.PlaceSettlement(1, 0))

		require.Error(t, state.PlaceSettlement(2, 0))
		require.Zero(t, len(state.Houses(2)))
	})

	t.Run("distance rule rejects neighbors of any player", func(t *testing.T) {
		state := NewState(testBoard(t))
		require.NoError(t, state.PlaceSettlement(1, 0))

		// Vertex 0 neighbors 1, 5, 9; the rule is player-agnostic.
		for _, n := range VertexNeighbors(0) {
			require.Error(t, state.PlaceSettlement(1, n))
			require.Error(t, state.PlaceSettlement(2, n))
			require.True(t, state.IsAvailable(n),
				"neighbor %d stays available, it is only infeasible", n)
		}
	})

	t.Run("appends in placement order", func(t *testing.T) {
		state := NewState(testBoard(t))
		require.NoError(t, state.PlaceSettlement(1, 10))
		require.NoError(t, state.PlaceSettlement(1, 0))
		require.Equal(t, []int{10, 0}, state.Houses(1))
	})
}

func TestFeasiblePositions(t *testing.T) {
	state := NewState(testBoard(t))

	t.Run("empty board offers every vertex in ascending order", func(t *testing.T) {
		feasible := state.FeasiblePositions(1)
		require.Len(t, feasible, NumVertices)
		for i, v := range feasible {
			require.Equal(t, i, v)
		}
	})

	t.Run("placement removes the vertex and its neighbors", func(t *testing.T) {
		require.NoError(t, state.PlaceSettlement(1, 0))

		feasible := state.FeasiblePositions(2)
		require.NotContains(t, feasible, 0)
		for _, n := range VertexNeighbors(0) {
			require.NotContains(t, feasible, n)
		}
		require.Len(t, feasible, NumVertices-1-len(VertexNeighbors(0)))
	})
}

func TestClone(t *testing.T) {
	state := NewState(testBoard(t))
	require.NoError(t, state.PlaceSettlement(1, 0))

	clone := state.Clone()
	require.NoError(t, clone.PlaceSettlement(2, 10))

	require.Equal(t, 2, clone.Occupant(10))
	require.Zero(t, state.Occupant(10), "mutating a clone must not touch the original")
	require.True(t, state.IsAvailable(10))
	require.Empty(t, state.Houses(2))
	require.Equal(t, []int{0}, clone.Houses(1))
}

func TestQualityOfPlayer(t *testing.T) {
	board := testBoard(t)
	state := NewState(board)

	_, err := state.QualityOfPlayer(1)
	require.Error(t, err, "zero settlements")

	require.NoError(t, state.PlaceSettlement(1, 0))
	_, err = state.QualityOfPlayer(1)
	require.Error(t, err, "one settlement")

	require.NoError(t, state.PlaceSettlement(1, 10))
	quality, err := state.QualityOfPlayer(1)
	require.NoError(t, err)
	require.Equal(t, board.PairQuality(1, 0, 10), quality)
}

func TestUpperBoundGivenFirst(t *testing.T) {
	board := testBoard(t)
	state := NewState(board)
	require.NoError(t, state.PlaceSettlement(2, 20))
	require.NoError(t, state.PlaceSettlement(3, 40))

	t.Run("equals the max over feasible seconds", func(t *testing.T) {
		first := 0
		want := math.Inf(-1)
		for _, v := range state.FeasiblePositions(1) {
			if v == first {
				continue
			}
			if q := state.PairQuality(1, first, v); q > want {
				want = q
			}
		}
		require.Equal(t, want, state.UpperBoundGivenFirst(1, first))
	})

	t.Run("admissible over every reachable completion", func(t *testing.T) {
		// Any second position still feasible after further placements was
		// already feasible now, so its pair quality cannot exceed the bound.
		first := 0
		bound := state.UpperBoundGivenFirst(1, first)
		next := state.Clone()
		require.NoError(t, next.PlaceSettlement(1, first))
		require.NoError(t, next.PlaceSettlement(4, 33))
		for _, second := range next.FeasiblePositions(1) {
			if second == first {
				continue
			}
			require.LessOrEqual(t, next.PairQuality(1, first, second), bound)
		}
	})

	t.Run("no feasible second yields -Inf", func(t *testing.T) {
		// Greedily fill a maximal independent set, sparing vertex 4 and its
		// neighbors 3 and 5, so vertex 4 is the single feasible position left.
		full := NewState(board)
		for v := 0; v < NumVertices; v++ {
			if v == 3 || v == 4 || v == 5 {
				continue
			}
			if full.IsFeasible(2, v) {
				require.NoError(t, full.PlaceSettlement(2, v))
			}
		}
		require.Equal(t, []int{4}, full.FeasiblePositions(1))
		require.True(t, math.IsInf(full.UpperBoundGivenFirst(1, 4), -1))
	})
}

func TestStateKey(t *testing.T) {
	board := testBoard(t)

	t.Run("ignores settlement ownership", func(t *testing.T) {
		a := NewState(board)
		require.NoError(t, a.PlaceSettlement(1, 0))
		require.NoError(t, a.PlaceSettlement(2, 10))

		b := NewState(board)
		require.NoError(t, b.PlaceSettlement(2, 0))
		require.NoError(t, b.PlaceSettlement(1, 10))

		require.Equal(t, a.Key(), b.Key(),
			"states with the same occupied vertices are equivalent subtrees")
	})

	t.Run("distinguishes different occupancy", func(t *testing.T) {
		a := NewState(board)
		require.NoError(t, a.PlaceSettlement(1, 0))

		b := NewState(board)
		require.NoError(t, b.PlaceSettlement(1, 10))

		require.NotEqual(t, a.Key(), b.Key())
	})

	t.Run("occupied and available sets partition the vertices", func(t *testing.T) {
		s := NewState(board)
		require.NoError(t, s.PlaceSettlement(1, 0))
		require.NoError(t, s.PlaceSettlement(2, 10))

		key := s.Key()
		require.Zero(t, key.Occupied&key.Available)
		require.Equal(t, uint64(1)<<NumVertices-1, key.Occupied|key.Available)
	})
}
