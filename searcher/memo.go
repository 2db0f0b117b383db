package searcher

import (
	"fmt"

	"catan/game"
)

// memoKey scopes a canonical state key to the player about to choose a first
// settlement. The state key itself ignores settlement ownership (see
// game.StateKey), which lets equivalent subtrees hit across branches where
// different players claimed the same vertices.
type memoKey struct {
	player int
	state  game.StateKey
}

// decision is one player's cached choice pair from a resolved subtree.
type decision struct {
	player int
	first  int
	second int
}

// memoEntry caches a subtree's best branch value together with the per-player
// decisions needed to rebuild its terminal state without recursing.
// decisions is nil when the subtree was a dead end (value -Inf).
type memoEntry struct {
	value     float64
	decisions []decision
}

type memoTable struct {
	entries map[memoKey]memoEntry
}

func newMemoTable() *memoTable {
	return &memoTable{entries: make(map[memoKey]memoEntry)}
}

func (t *memoTable) get(key memoKey) (memoEntry, bool) {
	entry, ok := t.entries[key]
	return entry, ok
}

func (t *memoTable) put(key memoKey, entry memoEntry) {
	t.entries[key] = entry
}

func (t *memoTable) size() int {
	return len(t.entries)
}

func (t *memoTable) reset() {
	t.entries = make(map[memoKey]memoEntry)
}

// replayDecisions rebuilds the terminal state of a memoized subtree onto a
// clone of state. Replay order mirrors the recursion's own resolution order:
// first settlements forward in turn order, then second settlements backward,
// since later players finalize before earlier ones pick their second spot.
// Any infeasible replayed placement means the cached decisions no longer
// match the state they are applied to, which is a caller bug.
func replayDecisions(state *game.State, decisions []decision) (*game.State, error) {
	replayed := state.Clone()
	for _, d := range decisions {
		if err := replayed.PlaceSettlement(d.player, d.first); err != nil {
			return nil, fmt.Errorf("replaying first settlement for player %d: %w", d.player, err)
		}
	}
	for i := len(decisions) - 1; i >= 0; i-- {
		d := decisions[i]
		if err := replayed.PlaceSettlement(d.player, d.second); err != nil {
			return nil, fmt.Errorf("replaying second settlement for player %d: %w", d.player, err)
		}
	}
	return replayed, nil
}

// decisionsFrom extracts the cached decisions for players from..lastPlayer out
// of a resolved terminal state. Each of those players holds exactly two
// settlements there; earlier players still hold only their first.
func decisionsFrom(resolved *game.State, from, lastPlayer int) ([]decision, error) {
	decisions := make([]decision, 0, lastPlayer-from+1)
	for player := from; player <= lastPlayer; player++ {
		houses := resolved.Houses(player)
		if len(houses) != 2 {
			return nil, fmt.Errorf("player %d has %d settlements in resolved state, expected 2", player, len(houses))
		}
		decisions = append(decisions, decision{player: player, first: houses[0], second: houses[1]})
	}
	return decisions, nil
}
