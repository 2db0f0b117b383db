package game

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Resource is a tile's resource type.
type Resource string

const (
	Wood   Resource = "wood"
	Brick  Resource = "brick"
	Wheat  Resource = "wheat"
	Ore    Resource = "ore"
	Sheep  Resource = "sheep"
	Desert Resource = "desert"
)

// resourceCounts is the standard resource distribution over the 19 tiles.
var resourceCounts = []struct {
	resource Resource
	count    int
}{
	{Wood, 4},
	{Brick, 3},
	{Wheat, 4},
	{Ore, 3},
	{Sheep, 4},
	{Desert, 1},
}

// numberTokens is the standard number token distribution over the 18
// non-desert tiles.
var numberTokens = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// Tile is one hexagonal board tile. Number is 0 on the desert tile.
type Tile struct {
	ID       int
	Row      int
	Col      int
	Resource Resource
	Number   int
}

// Weights configures the quality function's three components. Weights must be
// non-negative; an all-zero triple yields a zero score for every vertex set.
type Weights struct {
	Resources      float64
	ExpectedCards  float64
	ProbAtLeastOne float64
}

// DefaultWeights weighs the three quality components equally.
func DefaultWeights() Weights {
	return Weights{Resources: 1.0 / 3, ExpectedCards: 1.0 / 3, ProbAtLeastOne: 1.0 / 3}
}

func (w Weights) validate() error {
	if w.Resources < 0 || w.ExpectedCards < 0 || w.ProbAtLeastOne < 0 {
		return fmt.Errorf("quality weights must be non-negative, got %+v", w)
	}
	return nil
}

// Board is one randomly generated board: the fixed topology plus a seeded
// resource/number assignment and the quality matrices precomputed from it.
// A Board is immutable after construction.
type Board struct {
	Tiles      []Tile
	NumPlayers int
	Weights    Weights

	diceProbs     [13]float64 // indexed by roll value 2-12
	singleQuality [NumVertices]float64
	// pairQuality[player][v1][v2], player ids 1..NumPlayers. Symmetric in
	// v1/v2 with -Inf on the diagonal (self-pair sentinel).
	pairQuality [][][]float64
}

// NewBoard generates a board from an explicit seed so the same seed always
// reproduces the same layout and quality matrices.
func NewBoard(seed uint64, numPlayers int, weights Weights) (*Board, error) {
	if numPlayers < 2 || numPlayers > 4 {
		return nil, fmt.Errorf("number of players must be between 2 and 4, got %d", numPlayers)
	}
	if err := weights.validate(); err != nil {
		return nil, err
	}

	b := &Board{
		NumPlayers: numPlayers,
		Weights:    weights,
	}
	for roll := 2; roll <= 12; roll++ {
		b.diceProbs[roll] = float64(6-abs(7-roll)) / 36.0
	}

	rng := rand.New(rand.NewSource(seed))
	b.Tiles = layoutTiles()
	assignResources(b.Tiles, rng)
	assignNumberTokens(b.Tiles, rng)

	b.precomputeQuality()
	return b, nil
}

func layoutTiles() []Tile {
	tiles := make([]Tile, NumTiles)
	for id, pos := range tileRows {
		tiles[id] = Tile{ID: id, Row: pos[0], Col: pos[1]}
	}
	return tiles
}

func assignResources(tiles []Tile, rng *rand.Rand) {
	resources := make([]Resource, 0, NumTiles)
	for _, rc := range resourceCounts {
		for i := 0; i < rc.count; i++ {
			resources = append(resources, rc.resource)
		}
	}
	rng.Shuffle(len(resources), func(i, j int) {
		resources[i], resources[j] = resources[j], resources[i]
	})
	for i := range tiles {
		tiles[i].Resource = resources[i]
	}
}

func assignNumberTokens(tiles []Tile, rng *rand.Rand) {
	tokens := make([]int, len(numberTokens))
	copy(tokens, numberTokens)
	rng.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})
	next := 0
	for i := range tiles {
		if tiles[i].Resource == Desert {
			tiles[i].Number = 0
			continue
		}
		tiles[i].Number = tokens[next]
		next++
	}
}

func (b *Board) precomputeQuality() {
	for v := 0; v < NumVertices; v++ {
		b.singleQuality[v] = b.Quality([]int{v})
	}

	// All players currently share the same quality function, but the matrix
	// keeps a player dimension so per-player preferences stay a local change.
	b.pairQuality = make([][][]float64, b.NumPlayers+1)
	for player := 1; player <= b.NumPlayers; player++ {
		b.pairQuality[player] = make([][]float64, NumVertices)
		for v1 := 0; v1 < NumVertices; v1++ {
			b.pairQuality[player][v1] = make([]float64, NumVertices)
			for v2 := 0; v2 < NumVertices; v2++ {
				if v1 == v2 {
					b.pairQuality[player][v1][v2] = math.Inf(-1)
				} else {
					b.pairQuality[player][v1][v2] = b.Quality([]int{v1, v2})
				}
			}
		}
	}
}

// DiceProbability returns the probability of rolling the given value with two
// dice, or 0 for values outside 2-12.
func (b *Board) DiceProbability(roll int) float64 {
	if roll < 2 || roll > 12 {
		return 0
	}
	return b.diceProbs[roll]
}

// SingleQuality returns the precomputed quality of a lone settlement at the
// given vertex.
func (b *Board) SingleQuality(vertex int) float64 {
	return b.singleQuality[vertex]
}

// PairQuality returns the precomputed quality of a player's settlements at v1
// and v2. Symmetric in v1/v2; -Inf when v1 == v2.
func (b *Board) PairQuality(player, v1, v2 int) float64 {
	return b.pairQuality[player][v1][v2]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
