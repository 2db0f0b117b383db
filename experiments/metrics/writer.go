package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores experiment artifacts as CSV files under a timestamped
// directory, one directory per experiment run.
type Writer struct {
	baseDir string
}

func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteModalityConfigs(configs []ModalityConfig) error {
	path := filepath.Join(w.baseDir, "modality_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create modality configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "name", "upper_bound", "memo"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write modality configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Name,
			strconv.FormatBool(config.UpperBound),
			strconv.FormatBool(config.Memo),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write modality config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteSolveRecords(records []SolveRecord) error {
	path := filepath.Join(w.baseDir, "solve_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create solve records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"modality", "board", "seed", "solved", "timed_out", "duration",
		"quality", "first", "second", "recursive_calls",
		"feasibility_prunings", "upper_bound_prunings",
		"memo_hits", "memo_misses", "memo_size",
	}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write solve records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Modality),
			strconv.Itoa(record.Board),
			strconv.FormatUint(record.Seed, 10),
			strconv.FormatBool(record.Solved),
			strconv.FormatBool(record.TimedOut),
			record.Duration.String(),
			strconv.FormatFloat(record.Quality, 'f', -1, 64),
			strconv.Itoa(record.First),
			strconv.Itoa(record.Second),
			strconv.Itoa(record.RecursiveCalls),
			strconv.Itoa(record.FeasibilityPrunings),
			strconv.Itoa(record.UpperBoundPrunings),
			strconv.Itoa(record.MemoHits),
			strconv.Itoa(record.MemoMisses),
			strconv.Itoa(record.MemoSize),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write solve record row: %w", err)
		}
	}

	return nil
}
