package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedBoard builds a board with a hand-picked layout so quality components
// can be checked against hand computation. The layout is not a legal content
// assignment; the quality function only reads tiles and dice probabilities.
func fixedBoard(t *testing.T, weights Weights) *Board {
	t.Helper()
	b := &Board{Tiles: layoutTiles(), NumPlayers: 4, Weights: weights}
	for roll := 2; roll <= 12; roll++ {
		b.diceProbs[roll] = float64(6-abs(7-roll)) / 36.0
	}
	for i := range b.Tiles {
		b.Tiles[i].Resource = Sheep
		b.Tiles[i].Number = 3
	}
	b.Tiles[0].Resource, b.Tiles[0].Number = Wood, 8
	b.Tiles[1].Resource, b.Tiles[1].Number = Brick, 6
	b.Tiles[3].Resource, b.Tiles[3].Number = Desert, 0
	b.Tiles[4].Resource, b.Tiles[4].Number = Ore, 9
	return b
}

func TestQualityComponents(t *testing.T) {
	board := fixedBoard(t, Weights{Resources: 1, ExpectedCards: 1, ProbAtLeastOne: 1})

	t.Run("empty vertex set scores zero", func(t *testing.T) {
		require.Zero(t, board.Quality(nil))
	})

	t.Run("single vertex on one tile", func(t *testing.T) {
		// Vertex 4 touches only tile 0 (wood, 8): resource score
		// 2*1 + 0.5*1, expected cards P(8), prob at least one P(8).
		want := 2.5 + 5.0/36 + 5.0/36
		require.InDelta(t, want, board.Quality([]int{4}), 1e-12)
	})

	t.Run("desert tiles produce nothing", func(t *testing.T) {
		// Vertex 2 touches tiles 0 (wood, 8), 3 (desert), 4 (ore, 9);
		// the desert contributes to no component.
		want := (2*2 + 0.5*2) + (5.0+4.0)/36 + (5.0+4.0)/36
		require.InDelta(t, want, board.Quality([]int{2}), 1e-12)
	})

	t.Run("pair with a shared tile", func(t *testing.T) {
		// Vertices 0 and 1 share tiles 0 and 1; vertex 1 also touches
		// tile 4. Incidences count the shared tiles twice (5 total),
		// expected cards and roll coverage deduplicate them.
		wantResource := 2.0*3 + 0.5*5 // types {wood, brick, ore}
		wantExpected := (5.0 + 5.0 + 4.0) / 36
		wantProb := (5.0 + 5.0 + 4.0) / 36 // rolls {8, 6, 9} covered
		require.InDelta(t, wantResource+wantExpected+wantProb, board.Quality([]int{0, 1}), 1e-12)
	})

	t.Run("duplicate number tokens do not change roll coverage", func(t *testing.T) {
		// Vertex 10 touches only tile 2 (sheep, 3); vertex 22 touches
		// only tile 6 (sheep, 3). Two tiles, one covered roll.
		pair := board.Quality([]int{10, 22})
		wantResource := 2.0*1 + 0.5*2
		wantExpected := 2 * 2.0 / 36 // both tiles yield on a 3
		wantProb := 2.0 / 36         // but only the roll 3 is covered
		require.InDelta(t, wantResource+wantExpected+wantProb, pair, 1e-12)
	})
}

func TestQualityWeighting(t *testing.T) {
	t.Run("weights select components", func(t *testing.T) {
		resourceOnly := fixedBoard(t, Weights{Resources: 1})
		require.InDelta(t, 2.5, resourceOnly.Quality([]int{4}), 1e-12)

		cardsOnly := fixedBoard(t, Weights{ExpectedCards: 1})
		require.InDelta(t, 5.0/36, cardsOnly.Quality([]int{4}), 1e-12)

		probOnly := fixedBoard(t, Weights{ProbAtLeastOne: 1})
		require.InDelta(t, 5.0/36, probOnly.Quality([]int{4}), 1e-12)
	})

	t.Run("all-zero weights degenerate to zero", func(t *testing.T) {
		board := fixedBoard(t, Weights{})
		require.Zero(t, board.Quality([]int{4}))
	})
}
