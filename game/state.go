package game

import (
	"fmt"
	"math"
)

// StateKey canonically identifies a placement state for memoization:
// the set of occupied vertices and the set of still-available vertices,
// each packed as a 54-bit set. The key deliberately discards which player
// owns each occupied vertex: feasibility and pruning depend only on vertex
// occupancy, and quality lookups are scoped by player id separately, so
// branches where different players landed on the same vertices are
// equivalent subtrees.
type StateKey struct {
	Occupied  uint64
	Available uint64
}

// State tracks settlement placements during the search. A State is value-like:
// the solver clones it before mutating a branch, so no instance is ever shared
// across branches.
type State struct {
	board     *Board
	houses    [][]int             // houses[player] = vertices in placement order, ids 1..NumPlayers
	occupied  [NumVertices]uint8  // occupying player id per vertex, 0 if none
	available uint64              // bit v set while vertex v is unclaimed
}

// NewState returns an empty state on the given board: no settlements, every
// vertex available.
func NewState(board *Board) *State {
	s := &State{
		board:     board,
		houses:    make([][]int, board.NumPlayers+1),
		available: (uint64(1) << NumVertices) - 1,
	}
	for player := 1; player <= board.NumPlayers; player++ {
		s.houses[player] = make([]int, 0, 2)
	}
	return s
}

// Clone returns an independent copy. The board reference is shared; it is
// immutable after construction.
func (s *State) Clone() *State {
	c := &State{
		board:     s.board,
		houses:    make([][]int, len(s.houses)),
		occupied:  s.occupied,
		available: s.available,
	}
	for player := 1; player < len(s.houses); player++ {
		houses := make([]int, len(s.houses[player]), 2)
		copy(houses, s.houses[player])
		c.houses[player] = houses
	}
	return c
}

// Board returns the immutable board this state plays on.
func (s *State) Board() *Board {
	return s.board
}

// Houses returns the player's settlements in placement order (0-2 vertices).
func (s *State) Houses(player int) []int {
	return s.houses[player]
}

// Occupant returns the player occupying the vertex, or 0 if unoccupied.
func (s *State) Occupant(vertex int) int {
	return int(s.occupied[vertex])
}

// IsAvailable reports whether the vertex is still unclaimed.
func (s *State) IsAvailable(vertex int) bool {
	return s.available&(uint64(1)<<vertex) != 0
}

// IsFeasible reports whether the player may settle the vertex: it must be
// available and no neighboring vertex may be occupied by any player (the
// distance rule is player-agnostic).
func (s *State) IsFeasible(player, vertex int) bool {
	if !s.IsAvailable(vertex) || s.occupied[vertex] != 0 {
		return false
	}
	for _, n := range vertexNeighbors[vertex] {
		if s.occupied[n] != 0 {
			return false
		}
	}
	return true
}

// FeasiblePositions returns every vertex the player may currently settle, in
// ascending vertex order. The ordering is deliberate: downstream tie-breaking
// is "first encountered", so enumeration must be deterministic.
func (s *State) FeasiblePositions(player int) []int {
	var feasible []int
	for v := 0; v < NumVertices; v++ {
		if s.IsAvailable(v) && s.IsFeasible(player, v) {
			feasible = append(feasible, v)
		}
	}
	return feasible
}

// PlaceSettlement claims the vertex for the player. Placing on an unavailable
// or infeasible vertex is a caller bug and fails with an error. Neighbors are
// not removed from the available set; they become infeasible only through the
// distance-rule check.
func (s *State) PlaceSettlement(player, vertex int) error {
	if !s.IsAvailable(vertex) {
		return fmt.Errorf("vertex %d is not available", vertex)
	}
	if !s.IsFeasible(player, vertex) {
		return fmt.Errorf("placing a settlement at vertex %d is not feasible", vertex)
	}
	s.houses[player] = append(s.houses[player], vertex)
	s.occupied[vertex] = uint8(player)
	s.available &^= uint64(1) << vertex
	return nil
}

// PairQuality looks up the precomputed quality for the player's settlements
// at v1 and v2.
func (s *State) PairQuality(player, v1, v2 int) float64 {
	return s.board.PairQuality(player, v1, v2)
}

// QualityOfPlayer returns the quality of the player's two settlements. It is
// an error to ask before the player has placed exactly two.
func (s *State) QualityOfPlayer(player int) (float64, error) {
	houses := s.houses[player]
	if len(houses) != 2 {
		return 0, fmt.Errorf("player %d has %d settlements, expected 2", player, len(houses))
	}
	return s.PairQuality(player, houses[0], houses[1]), nil
}

// UpperBoundGivenFirst returns the best pair quality the player could reach
// with a first settlement at first if every currently feasible second
// position stayed available. Later players can only shrink that candidate
// set, so the true achievable value never exceeds this bound.
func (s *State) UpperBoundGivenFirst(player, first int) float64 {
	bound := math.Inf(-1)
	for v := 0; v < NumVertices; v++ {
		if v == first || !s.IsAvailable(v) || !s.IsFeasible(player, v) {
			continue
		}
		if q := s.PairQuality(player, first, v); q > bound {
			bound = q
		}
	}
	return bound
}

// Key returns the canonical memoization key for this state.
func (s *State) Key() StateKey {
	var occupied uint64
	for v := 0; v < NumVertices; v++ {
		if s.occupied[v] != 0 {
			occupied |= uint64(1) << v
		}
	}
	return StateKey{Occupied: occupied, Available: s.available}
}
