// Package model defines shared data structures.
package model

import "time"

// Config defines typing screen settings.
type Config struct {
	// Record controls whether finished runs are written to the
	// history database.
	Record bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// RunStats captures a completed typing run. Correct and Incorrect are
// cumulative keystroke counts over the whole run, not the final
// positional state of the typed text.
type RunStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Words      int
	SampleLen  int
	Correct    int
	Incorrect  int
	DurationMs int64
}

// CharStats stores per-character keystroke stats for a run.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across runs.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// RunAggregate summarizes a run for reporting.
type RunAggregate struct {
	RunID      int64
	EndedAt    time.Time
	Words      int
	Correct    int
	Incorrect  int
	DurationMs int64
}
