package searcher

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"catan/game"
)

// ErrNoSolution is returned when no feasible placement exists for player 1 at
// the search root. On a standard empty board this signals a broken board or
// geometry setup rather than an unlucky search.
var ErrNoSolution = errors.New("no settlement solution found")

// Solution is the outcome of a solve: the terminal state with two settlements
// per player, plus player 1's placements and quality for quick access.
type Solution struct {
	State   *game.State
	First   int
	Second  int
	Quality float64
}

type Option func(*Solver)

// WithoutUpperBoundPruning disables upper-bound branch cuts. Candidates are
// then ordered by single-vertex quality instead of by bound.
func WithoutUpperBoundPruning() Option {
	return func(s *Solver) {
		s.upperBound = false
	}
}

// WithoutMemo disables subtree memoization.
func WithoutMemo() Option {
	return func(s *Solver) {
		s.memo = nil
	}
}

// WithCollector replaces the default metrics collector.
func WithCollector(c Collector) Option {
	return func(s *Solver) {
		if c != nil {
			s.collector = c
		}
	}
}

// Solver finds optimal settlement placements for every player by backward
// induction: a depth-first search where each player picks a first settlement,
// all later players fully resolve, and the player then picks the best second
// settlement from what remains. A Solver is single-threaded; run independent
// solves on separate Solver instances.
type Solver struct {
	board      *game.Board
	upperBound bool
	memo       *memoTable
	collector  Collector
}

func NewSolver(board *game.Board, options ...Option) *Solver {
	s := &Solver{
		board:      board,
		upperBound: true,
		memo:       newMemoTable(),
		collector:  NewCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Solve runs the search from an empty board. The context deadline is checked
// cooperatively inside the candidate loop; cancellation surfaces as ctx.Err().
// Solving the same board repeatedly returns the identical solution.
func (s *Solver) Solve(ctx context.Context) (*Solution, Metric, error) {
	s.collector.Start()
	if s.memo != nil {
		s.memo.reset()
	}

	final, err := s.dfs(ctx, 1, game.NewState(s.board))
	if s.memo != nil {
		s.collector.SetMemoSize(s.memo.size())
	}
	metric := s.collector.Complete()
	if err != nil {
		return nil, metric, err
	}
	if final == nil {
		return nil, metric, ErrNoSolution
	}

	quality, err := final.QualityOfPlayer(1)
	if err != nil {
		return nil, metric, err
	}
	houses := final.Houses(1)
	log.Debug().
		Ints("player1", houses).
		Float64("quality", quality).
		Int("calls", metric.RecursiveCalls).
		Msg("solve complete")

	return &Solution{
		State:   final,
		First:   houses[0],
		Second:  houses[1],
		Quality: quality,
	}, metric, nil
}

// candidate is a first-settlement option with its ordering score: the upper
// bound when upper-bound pruning is on, the single-vertex quality otherwise.
type candidate struct {
	vertex int
	score  float64
}

// dfs resolves players player..N on state and returns the best terminal state
// for player, or nil when no completion exists (a dead end, not an error).
func (s *Solver) dfs(ctx context.Context, player int, state *game.State) (*game.State, error) {
	s.collector.AddCall()

	// Base case of the induction: everyone has placed.
	if player > s.board.NumPlayers {
		return state, nil
	}

	var key memoKey
	if s.memo != nil {
		key = memoKey{player: player, state: state.Key()}
		if entry, ok := s.memo.get(key); ok {
			s.collector.AddMemoHit()
			if entry.decisions == nil {
				return nil, nil
			}
			replayed, err := replayDecisions(state, entry.decisions)
			if err != nil {
				return nil, err
			}
			return replayed, nil
		}
		s.collector.AddMemoMiss()
	}

	firstCandidates := state.FeasiblePositions(player)
	if len(firstCandidates) == 0 {
		if s.memo != nil {
			s.memo.put(key, memoEntry{value: math.Inf(-1)})
		}
		return nil, nil
	}
	ordered := s.orderCandidates(player, state, firstCandidates)

	bestValue := math.Inf(-1)
	var bestState *game.State

	for _, cand := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Defensive re-check; candidates were pre-filtered.
		if !state.IsFeasible(player, cand.vertex) {
			s.collector.AddFeasibilityPruning()
			continue
		}
		// A branch whose bound cannot beat the incumbent is not worth
		// recursing into.
		if s.upperBound && cand.score <= bestValue {
			s.collector.AddUpperBoundPruning()
			continue
		}

		next := state.Clone()
		if err := next.PlaceSettlement(player, cand.vertex); err != nil {
			return nil, err
		}
		resolved, err := s.dfs(ctx, player+1, next)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			continue
		}

		second, pairValue := bestSecond(resolved, player, cand.vertex)
		if second < 0 {
			continue
		}
		if pairValue > bestValue {
			final := resolved.Clone()
			if err := final.PlaceSettlement(player, second); err != nil {
				return nil, err
			}
			bestValue = pairValue
			bestState = final
		}
	}

	if s.memo != nil {
		entry := memoEntry{value: bestValue}
		if bestState != nil {
			decisions, err := decisionsFrom(bestState, player, s.board.NumPlayers)
			if err != nil {
				return nil, err
			}
			entry.decisions = decisions
		}
		s.memo.put(key, entry)
	}
	return bestState, nil
}

// orderCandidates sorts first-settlement candidates best-first so the
// incumbent improves early and later branches prune. Ordering is a heuristic,
// not a correctness requirement; ties break by ascending vertex id to keep
// the search deterministic.
func (s *Solver) orderCandidates(player int, state *game.State, vertices []int) []candidate {
	candidates := make([]candidate, len(vertices))
	for i, v := range vertices {
		score := s.board.SingleQuality(v)
		if s.upperBound {
			score = state.UpperBoundGivenFirst(player, v)
		}
		candidates[i] = candidate{vertex: v, score: score}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].vertex < candidates[j].vertex
	})
	return candidates
}

// bestSecond picks the feasible second settlement maximizing the player's
// pair quality with first. Ties go to the first candidate in ascending vertex
// order. Returns -1 when no second position remains.
func bestSecond(state *game.State, player, first int) (int, float64) {
	best := -1
	bestValue := math.Inf(-1)
	for _, v := range state.FeasiblePositions(player) {
		if v == first {
			continue
		}
		if val := state.PairQuality(player, first, v); val > bestValue {
			bestValue = val
			best = v
		}
	}
	return best, bestValue
}
