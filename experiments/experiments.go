package experiments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"catan/experiments/metrics"
	"catan/game"
	"catan/searcher"
)

const (
	DefaultNumBoards = 10
	DefaultTimeLimit = 25 * time.Second
	numPlayers       = 4
)

// modalities under comparison. Feasibility checking is part of the search
// itself; the first modality is the baseline with everything else off.
var modalities = []metrics.ModalityConfig{
	{ID: 1, Name: "feasibility pruning only", UpperBound: false, Memo: false},
	{ID: 2, Name: "feasibility + memo", UpperBound: false, Memo: true},
	{ID: 3, Name: "all prunings (feasibility + upper bound + memo)", UpperBound: true, Memo: true},
}

// RunPruningComparison solves the same seeded boards under each pruning
// modality and reports per-modality timing, pruning counters, and speedups.
// Each solve runs under its own wall-clock limit; boards within a modality
// are solved in parallel since independent solves share no mutable data.
func RunPruningComparison(numBoards int, timeLimit time.Duration) {
	log.Info().Msgf("starting pruning comparison: %d boards, %s limit per solve...", numBoards, timeLimit)

	boards := make([]*game.Board, numBoards)
	for i := range boards {
		seed := uint64(i) // board number doubles as the seed for reproducibility
		board, err := game.NewBoard(seed, numPlayers, game.DefaultWeights())
		if err != nil {
			panic(fmt.Sprintf("failed to generate board %d: %v", i, err))
		}
		boards[i] = board
	}
	log.Info().Msgf("generated %d boards", numBoards)

	records := []metrics.SolveRecord{}
	for _, modality := range modalities {
		log.Info().Msgf("starting modality %d: %s...", modality.ID, modality.Name)
		modalityRecords := solveBoards(modality, boards, timeLimit)
		records = append(records, modalityRecords...)
		logSummary(modality, modalityRecords)
	}

	checkAgreement(records)
	logSpeedups(records)

	writer, err := metrics.NewWriter("pruning_comparison")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}
	err = writer.WriteModalityConfigs(modalities)
	if err != nil {
		panic(fmt.Sprintf("failed to store modality configs: %v", err))
	}
	err = writer.WriteSolveRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to store solve records: %v", err))
	}
	log.Info().Msg("stored experiment records")
}

func solveBoards(modality metrics.ModalityConfig, boards []*game.Board, timeLimit time.Duration) []metrics.SolveRecord {
	records := make([]metrics.SolveRecord, len(boards))

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())
	for i, board := range boards {
		i, board := i, board
		group.Go(func() error {
			records[i] = solveBoard(modality, i, board, timeLimit)
			return nil
		})
	}
	// Goroutines only record outcomes; nothing errors.
	_ = group.Wait()
	return records
}

func solveBoard(modality metrics.ModalityConfig, boardNum int, board *game.Board, timeLimit time.Duration) metrics.SolveRecord {
	options := []searcher.Option{}
	if !modality.UpperBound {
		options = append(options, searcher.WithoutUpperBoundPruning())
	}
	if !modality.Memo {
		options = append(options, searcher.WithoutMemo())
	}
	solver := searcher.NewSolver(board, options...)

	ctx, cancel := context.WithTimeout(context.Background(), timeLimit)
	defer cancel()

	start := time.Now()
	solution, metric, err := solver.Solve(ctx)
	elapsed := time.Since(start)

	record := metrics.SolveRecord{
		Modality: modality.ID,
		Board:    boardNum,
		Seed:     uint64(boardNum),
		Duration: elapsed,
		First:    -1,
		Second:   -1,
		Metric:   metric,
	}
	switch {
	case err == nil:
		record.Solved = true
		record.Quality = solution.Quality
		record.First = solution.First
		record.Second = solution.Second
		log.Info().Msgf("modality %d board %d: %.4fs, %d calls, %d prunings",
			modality.ID, boardNum, elapsed.Seconds(), metric.RecursiveCalls, metric.TotalPrunings())
	case errors.Is(err, context.DeadlineExceeded):
		record.TimedOut = true
		log.Warn().Msgf("modality %d board %d: timeout after %.2fs", modality.ID, boardNum, elapsed.Seconds())
	default:
		log.Error().Err(err).Msgf("modality %d board %d: solve failed", modality.ID, boardNum)
	}
	return record
}

func logSummary(modality metrics.ModalityConfig, records []metrics.SolveRecord) {
	solved := lo.Filter(records, func(r metrics.SolveRecord, _ int) bool { return r.Solved })
	timeouts := lo.CountBy(records, func(r metrics.SolveRecord) bool { return r.TimedOut })

	if len(solved) == 0 {
		log.Info().Msgf("modality %d summary: 0/%d solved, %d timeouts", modality.ID, len(records), timeouts)
		return
	}

	seconds := lo.Map(solved, func(r metrics.SolveRecord, _ int) float64 { return r.Duration.Seconds() })
	log.Info().
		Int("solved", len(solved)).
		Int("total", len(records)).
		Int("timeouts", timeouts).
		Float64("mean_s", stat.Mean(seconds, nil)).
		Float64("stddev_s", stat.StdDev(seconds, nil)).
		Float64("min_s", lo.Min(seconds)).
		Float64("max_s", lo.Max(seconds)).
		Msgf("modality %d summary", modality.ID)
}

// checkAgreement verifies that modalities only differ in counters: every
// modality that solved a board must report the same quality on it.
func checkAgreement(records []metrics.SolveRecord) {
	byBoard := lo.GroupBy(lo.Filter(records, func(r metrics.SolveRecord, _ int) bool { return r.Solved }),
		func(r metrics.SolveRecord) int { return r.Board })

	for board, boardRecords := range byBoard {
		for _, r := range boardRecords[1:] {
			if math.Abs(r.Quality-boardRecords[0].Quality) > 1e-6 {
				log.Warn().Msgf("board %d: modality %d quality %.6f disagrees with modality %d quality %.6f",
					board, r.Modality, r.Quality, boardRecords[0].Modality, boardRecords[0].Quality)
			}
		}
	}
}

func logSpeedups(records []metrics.SolveRecord) {
	baseline := meanSeconds(records, modalities[0].ID)
	if baseline == 0 {
		return
	}
	for _, modality := range modalities[1:] {
		mean := meanSeconds(records, modality.ID)
		if mean == 0 {
			continue
		}
		log.Info().Msgf("speedup of %q over %q: %.2fx", modality.Name, modalities[0].Name, baseline/mean)
	}
}

func meanSeconds(records []metrics.SolveRecord, modalityID int) float64 {
	solved := lo.Filter(records, func(r metrics.SolveRecord, _ int) bool {
		return r.Modality == modalityID && r.Solved
	})
	if len(solved) == 0 {
		return 0
	}
	return stat.Mean(lo.Map(solved, func(r metrics.SolveRecord, _ int) float64 { return r.Duration.Seconds() }), nil)
}
