package metrics

import (
	"time"

	"catan/searcher"
)

// ModalityConfig describes one pruning configuration under comparison.
// Feasibility checking is always on; modalities differ in upper-bound
// pruning and memoization.
type ModalityConfig struct {
	ID         int
	Name       string
	UpperBound bool
	Memo       bool
}

// SolveRecord is the outcome of solving one board under one modality.
type SolveRecord struct {
	Modality int // ModalityConfig.ID
	Board    int
	Seed     uint64
	Solved   bool
	TimedOut bool
	Duration time.Duration
	Quality  float64 // Player 1's pair quality, 0 when unsolved
	First    int     // Player 1's placements, -1 when unsolved
	Second   int
	searcher.Metric
}
