package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catan/experiments"
	"catan/game"
	"catan/searcher"
)

func main() {
	var (
		seed       = flag.Uint64("seed", uint64(time.Now().UnixNano()), "board generation seed")
		players    = flag.Int("players", 4, "number of players (2-4)")
		timeout    = flag.Duration("timeout", 0, "wall-clock limit per solve (0 = none)")
		compare    = flag.Bool("compare", false, "also solve without upper-bound pruning and compare")
		experiment = flag.Bool("experiment", false, "run the pruning-modality comparison instead of a single solve")
		boards     = flag.Int("boards", experiments.DefaultNumBoards, "number of boards for -experiment")
		limit      = flag.Duration("limit", experiments.DefaultTimeLimit, "per-solve time limit for -experiment")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *experiment {
		experiments.RunPruningComparison(*boards, *limit)
		return
	}

	fmt.Printf("Generating board (seed=%d, players=%d)...\n", *seed, *players)
	board, err := game.NewBoard(*seed, *players, game.DefaultWeights())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate board")
	}

	solution, metric, err := solveWithTimeout(board, *timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}

	fmt.Printf("\nPlayer 1 optimal positions: (%d, %d)\n", solution.First, solution.Second)
	fmt.Printf("Player 1 quality score: %.4f\n\n", solution.Quality)

	fmt.Println("All players' settlements:")
	for player := 1; player <= *players; player++ {
		houses := solution.State.Houses(player)
		quality, err := solution.State.QualityOfPlayer(player)
		if err != nil {
			log.Fatal().Err(err).Msgf("player %d ended without two settlements", player)
		}
		fmt.Printf("  Player %d: vertices %v, quality: %.4f\n", player, houses, quality)
	}

	printMetrics(metric)

	if *compare {
		fmt.Println("\nSolving again without upper-bound pruning...")
		noUB, noUBMetric, err := solveWithTimeout(board, *timeout, searcher.WithoutUpperBoundPruning())
		if err != nil {
			log.Fatal().Err(err).Msg("comparison solve failed")
		}

		if noUB.First == solution.First && noUB.Second == solution.Second &&
			math.Abs(noUB.Quality-solution.Quality) <= 1e-6 {
			fmt.Println("Solutions match.")
		} else {
			fmt.Printf("Solutions differ: (%d, %d) quality %.6f vs (%d, %d) quality %.6f\n",
				solution.First, solution.Second, solution.Quality,
				noUB.First, noUB.Second, noUB.Quality)
		}
		printMetrics(noUBMetric)
		if noUBMetric.Duration > 0 {
			fmt.Printf("Speedup with upper-bound pruning: %.2fx\n",
				noUBMetric.Duration.Seconds()/metric.Duration.Seconds())
		}
	}
}

// solveWithTimeout runs one solve under its own wall-clock budget.
func solveWithTimeout(board *game.Board, timeout time.Duration, options ...searcher.Option) (*searcher.Solution, searcher.Metric, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return searcher.NewSolver(board, options...).Solve(ctx)
}

func printMetrics(m searcher.Metric) {
	fmt.Println("\nSolver metrics:")
	fmt.Printf("  Elapsed time: %.4fs\n", m.Duration.Seconds())
	fmt.Printf("  Recursive calls: %d\n", m.RecursiveCalls)
	fmt.Printf("  Feasibility prunings: %d\n", m.FeasibilityPrunings)
	fmt.Printf("  Upper-bound prunings: %d\n", m.UpperBoundPrunings)
	fmt.Printf("  Memo hits/misses: %d/%d (size %d, hit rate %.2f%%)\n",
		m.MemoHits, m.MemoMisses, m.MemoSize, m.MemoHitRate()*100)
}
